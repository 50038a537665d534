package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"go.uber.org/zap"

	"storefront-server/cart"
	"storefront-server/models"
	"storefront-server/utils"
)

var (
	ErrUpstreamUnconfigured = errors.New("payment provider is not configured")
	ErrProductNotFound      = errors.New("product not found")
	ErrEmptyCheckout        = errors.New("no items to check out")
)

// PaymentLine is one priced line sent to the payment provider. Amounts are
// taken from the catalog, never from the client.
type PaymentLine struct {
	ProductID   string
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// BuildLineItems prices the requested items against the current catalog.
func BuildLineItems(products []models.Product, items []models.LineItem) ([]PaymentLine, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCheckout
	}

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		if _, dup := byID[products[i].ID]; !dup {
			byID[products[i].ID] = &products[i]
		}
	}

	lines := make([]PaymentLine, 0, len(items))
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, PaymentLine{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: lineDescription(p, item),
			UnitAmount:  int64(math.Round(p.Price * 100)),
			Quantity:    int64(qty),
		})
	}
	return lines, nil
}

func lineDescription(p *models.Product, item models.LineItem) string {
	opts := p.Opts()
	var parts []string
	if desc := utils.StripHTML(p.Description); desc != "" {
		parts = append(parts, desc)
	}
	if item.Size != "" {
		parts = append(parts, "Size: "+cart.SizeLabel(opts, item.Size))
	}
	if item.Color != "" {
		parts = append(parts, "Color: "+cart.ColorLabel(opts, item.Color))
	}
	if item.DogName != "" {
		parts = append(parts, "Name: "+utils.StripHTML(item.DogName))
	}
	if item.Note != "" {
		parts = append(parts, "Note: "+utils.StripHTML(item.Note))
	}
	return strings.Join(parts, " | ")
}

// CheckoutService turns priced lines into a hosted payment page URL.
type CheckoutService interface {
	Configured() bool
	CreateSession(ctx context.Context, lines []PaymentLine) (string, error)
}

type CheckoutConfig struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}

type StripeCheckout struct {
	sc     *client.API
	config CheckoutConfig
	logger *zap.Logger
}

// NewStripeCheckout returns a checkout that reports ErrUpstreamUnconfigured
// on every call when no secret key is set.
func NewStripeCheckout(cfg CheckoutConfig, logger *zap.Logger) *StripeCheckout {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	sc := &StripeCheckout{config: cfg, logger: logger}
	if cfg.SecretKey != "" {
		sc.sc = client.New(cfg.SecretKey, nil)
	}
	return sc
}

func (s *StripeCheckout) Configured() bool {
	return s.sc != nil
}

func (s *StripeCheckout) CreateSession(ctx context.Context, lines []PaymentLine) (string, error) {
	if s.sc == nil {
		return "", ErrUpstreamUnconfigured
	}

	params := s.sessionParams(lines)
	params.Context = ctx

	sess, err := s.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("session_id", sess.ID),
		zap.Int("lines", len(lines)))
	return sess.URL, nil
}

func (s *StripeCheckout) sessionParams(lines []PaymentLine) *stripe.CheckoutSessionParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(l.Name),
		}
		// the API rejects empty strings
		if l.Description != "" {
			product.Description = stripe.String(l.Description)
		}
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(s.config.Currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(l.UnitAmount),
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}

	return &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  items,
		SuccessURL: stripe.String(s.config.SuccessURL),
		CancelURL:  stripe.String(s.config.CancelURL),
	}
}
