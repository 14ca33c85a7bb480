// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoform/lithoform/pkg/api/apitest"
	"github.com/lithoform/lithoform/pkg/cart"
	"github.com/lithoform/lithoform/pkg/localstore"
)

func newTestApp(t *testing.T) (*Context, *apitest.Server) {
	t.Helper()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedUser("maker@example.test", "printall3d")
	srv.SeedModel("mod-1", "Bracket", 5)
	srv.SeedModel("mod-2", "Gear", 3)
	srv.SeedMaterial("pla", "PLA", 0.8)

	a, err := New(Config{APIBaseURL: srv.URL()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a, srv
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestContext_GuestCartRouting(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	sel := cart.Selection{ModelID: "mod-1", ModelName: "Bracket", UnitPrice: 5}
	require.NoError(t, a.AddToCart(ctx, sel, 2))
	require.NoError(t, a.AddToCart(ctx, sel, 1))

	lines := a.CartLines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].ID.IsLocal())
	assert.Equal(t, 3, lines[0].Quantity)

	snap := a.CartSummary()
	assert.Equal(t, 3, snap.ItemCount)
	assert.InDelta(t, 15, snap.Subtotal, 1e-9)
	assert.InDelta(t, 25, snap.Total, 1e-9)
	assert.False(t, a.CartUnavailable())
}

func TestContext_LoginReconcilesGuestCart(t *testing.T) {
	a, srv := newTestApp(t)
	ctx := context.Background()

	sel := cart.Selection{ModelID: "mod-1", MaterialID: "pla", UnitPrice: 5}
	require.NoError(t, a.AddToCart(ctx, sel, 1))
	require.NoError(t, a.AddToCart(ctx, sel, 1))

	require.NoError(t, a.Session.Login(ctx, "maker@example.test", "printall3d"))

	// One merge request carried the summed quantity; the guest
	// buffer is drained and the mirror is active.
	calls := srv.MergeCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 2, calls[0].Quantity)
	assert.Empty(t, a.Guest.Lines())

	lines := a.CartLines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].ID.IsRemote())
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestContext_AuthenticatedCartRouting(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.Session.Login(ctx, "maker@example.test", "printall3d"))

	require.NoError(t, a.AddToCart(ctx, cart.Selection{ModelID: "mod-2"}, 1))
	lines := a.CartLines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].ID.IsRemote())

	require.NoError(t, a.SetCartQuantity(ctx, lines[0].ID, 4))
	assert.Equal(t, 4, a.CartLines()[0].Quantity)

	require.NoError(t, a.RemoveFromCart(ctx, lines[0].ID))
	assert.Empty(t, a.CartLines())

	// Nothing landed in the guest buffer.
	assert.Empty(t, a.Guest.Lines())
}

func TestContext_LogoutEmptiesCartAndStorage(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.Session.Login(ctx, "maker@example.test", "printall3d"))
	require.NoError(t, a.AddToCart(ctx, cart.Selection{ModelID: "mod-1"}, 2))
	require.NotEmpty(t, a.CartLines())

	a.Session.Logout()

	// Any cart read now returns an empty collection.
	assert.Empty(t, a.CartLines())
	assert.Zero(t, a.CartSummary().Total)

	// No session fields remain in durable storage.
	_, ok, err := a.Local.GetString(ctx, localstore.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContext_RestoredSessionDoesNotReconcile(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("maker@example.test", "printall3d")
	srv.SeedModel("mod-1", "Bracket", 5)

	dir := t.TempDir()

	first, err := New(Config{APIBaseURL: srv.URL(), DataDir: dir})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, first.Session.Login(ctx, "maker@example.test", "printall3d"))
	require.NoError(t, first.AddToCart(ctx, cart.Selection{ModelID: "mod-1"}, 1))
	mergesAfterLogin := len(srv.MergeCalls())
	require.NoError(t, first.Close())

	second, err := New(Config{APIBaseURL: srv.URL(), DataDir: dir})
	require.NoError(t, err)
	defer second.Close()

	// The session survived the restart, but startup never triggers a
	// reconciliation pass.
	assert.True(t, second.Session.Authenticated())
	assert.Len(t, srv.MergeCalls(), mergesAfterLogin)

	require.NoError(t, second.RefreshCart(ctx))
	assert.Len(t, second.CartLines(), 1)
}

func TestContext_RestoredSessionClearEmptiesServerCart(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("maker@example.test", "printall3d")
	srv.SeedModel("mod-1", "Bracket", 5)

	dir := t.TempDir()

	first, err := New(Config{APIBaseURL: srv.URL(), DataDir: dir})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, first.Session.Login(ctx, "maker@example.test", "printall3d"))
	require.NoError(t, first.AddToCart(ctx, cart.Selection{ModelID: "mod-1"}, 2))
	require.NoError(t, first.Close())

	// The second process has never fetched the cart; clearing must
	// still remove every server row rather than no-op on the empty
	// cache.
	second, err := New(Config{APIBaseURL: srv.URL(), DataDir: dir})
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, second.ClearCart(ctx))
	assert.Empty(t, srv.CartRows("maker@example.test"))
	assert.Empty(t, second.CartLines())
}
