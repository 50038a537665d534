package cart

// StorageKey is the local storage key the cart is kept under.
const StorageKey = "gf_cart_v1"

// Storage is the durable key/value store the cart persists into. It mirrors
// browser local storage: string keys, string values.
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
}
