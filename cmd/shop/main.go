// Command shop is a terminal storefront: it browses the catalog, keeps a cart
// in a local SQLite file and hands checkout off to the server.
package main

import (
	"fmt"
	"os"

	"storefront-server/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	root, a := newRootCmd(cfg)
	err = root.Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}
