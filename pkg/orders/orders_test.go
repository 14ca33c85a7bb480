// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/api/apitest"
)

func newTestStore(t *testing.T) (*Store, *api.Client, *apitest.Server) {
	t.Helper()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedUser("maker@example.test", "printall3d")
	srv.SeedModel("mod-1", "Bracket", 10)

	client := api.New(srv.URL())
	resp, err := client.Login(context.Background(), "maker@example.test", "printall3d")
	require.NoError(t, err)
	client.SetTokenSource(api.StaticToken(resp.Key))

	return New(client, nil), client, srv
}

func TestStore_PlaceAndTrack(t *testing.T) {
	store, client, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Refresh(ctx))
	assert.Empty(t, store.All())

	require.NoError(t, client.CreateCartItem(ctx, "mod-1", "", 2))
	order, err := store.Place(ctx, api.OrderRequest{ShippingAddress: "1 Print St"})
	require.NoError(t, err)
	assert.Equal(t, api.OrderStatusPending, order.Status)
	assert.InDelta(t, 20, order.TotalPrice.Float64(), 1e-9)

	// Place refreshed the cache.
	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, order.ID, all[0].ID)
	assert.Len(t, store.Open(), 1)
	assert.Empty(t, store.Completed())

	fetched, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}

func TestStore_PlaceWithEmptyCartFails(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.Place(context.Background(), api.OrderRequest{ShippingAddress: "1 Print St"})
	require.Error(t, err)
	assert.Empty(t, store.All())
}

func TestStore_CancelMovesOrderToCompleted(t *testing.T) {
	store, client, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, client.CreateCartItem(ctx, "mod-1", "", 1))
	order, err := store.Place(ctx, api.OrderRequest{ShippingAddress: "1 Print St"})
	require.NoError(t, err)

	cancelled, err := store.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, api.OrderStatusCancelled, cancelled.Status)

	assert.Empty(t, store.Open())
	require.Len(t, store.Completed(), 1)

	// A cancelled order cannot be cancelled again.
	_, err = store.Cancel(ctx, order.ID)
	assert.Error(t, err)
}
