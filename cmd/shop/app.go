package main

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"storefront-server/cart"
	"storefront-server/client"
	"storefront-server/localstore"
	"storefront-server/models"
)

// selectionsKey holds in-progress product selections between invocations.
const selectionsKey = "gf_selections_v1"

type app struct {
	baseURL string
	cartDB  string
	verbose bool

	logger  *zap.Logger
	client  *client.Client
	store   *localstore.SQLiteStore
	session *cart.Session
}

func (a *app) open(ctx context.Context) error {
	a.logger = zap.NewNop()
	if a.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		a.logger = logger
	}

	store, err := localstore.OpenSQLite(a.cartDB)
	if err != nil {
		return err
	}
	a.store = store
	a.client = client.New(a.baseURL, nil, a.logger)

	products, err := a.client.Products(ctx)
	if err != nil {
		return err
	}

	a.session = cart.NewSession(products, cart.Load(store, a.logger))
	a.loadSelections()
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if a.session != nil {
		a.saveSelections()
	}
	a.store.Close()
	a.logger.Sync()
}

func (a *app) loadSelections() {
	raw, ok, err := a.store.GetItem(selectionsKey)
	if err != nil || !ok {
		return
	}
	var saved map[string]models.Selection
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		a.logger.Warn("stored selections are corrupt, ignoring", zap.Error(err))
		return
	}
	a.session.Selections.Restore(saved)
}

func (a *app) saveSelections() {
	data, err := json.Marshal(a.session.Selections.Snapshot())
	if err != nil {
		return
	}
	if err := a.store.SetItem(selectionsKey, string(data)); err != nil {
		a.logger.Warn("failed to save selections", zap.Error(err))
	}
}

// product resolves an id, slug or handle.
func (a *app) product(key string) (*models.Product, error) {
	p, ok := a.session.Product(key)
	if !ok {
		return nil, fmt.Errorf("product %q not found", key)
	}
	return p, nil
}
