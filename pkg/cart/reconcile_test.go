// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoform/lithoform/pkg/api/apitest"
	"github.com/lithoform/lithoform/pkg/localstore"
)

// reconcileFixture extends the mirror fixture with a guest buffer.
type reconcileFixture struct {
	*mirrorFixture
	guest      *Guest
	store      *localstore.Store
	reconciler *Reconciler
}

func newReconcileFixture(t *testing.T) *reconcileFixture {
	t.Helper()

	mf := newMirrorFixture(t)
	store, err := localstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	guest := NewGuest(store, nil)
	return &reconcileFixture{
		mirrorFixture: mf,
		guest:         guest,
		store:         store,
		reconciler:    NewReconciler(mf.client, guest, mf.mirror, nil),
	}
}

func TestReconciler_GuestLinesBecomeRemoteCart(t *testing.T) {
	fix := newReconcileFixture(t)

	// A guest adds the same model and material twice: one line, qty 2.
	sel := Selection{ModelID: "mod-1", ModelName: "Bracket", MaterialID: "pla", MaterialName: "PLA", UnitPrice: 5}
	fix.guest.Add(sel, 1)
	fix.guest.Add(sel, 1)
	require.Len(t, fix.guest.Lines(), 1)

	fix.reconciler.MergeLocalIntoRemote(context.Background())

	// Exactly one merge request, carrying the summed quantity.
	calls := fix.srv.MergeCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, apitest.MergeCall{ModelID: "mod-1", MaterialID: "pla", Quantity: 2}, calls[0])

	// The guest buffer is drained and the mirror is now the active cart.
	assert.Empty(t, fix.guest.Lines())
	lines := fix.mirror.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].ID.IsRemote())
}

func TestReconciler_SubmitsLinesInBufferOrder(t *testing.T) {
	fix := newReconcileFixture(t)
	fix.guest.Add(Selection{ModelID: "mod-2"}, 1)
	fix.guest.Add(Selection{ModelID: "mod-1", MaterialID: "pla"}, 3)

	fix.reconciler.MergeLocalIntoRemote(context.Background())

	calls := fix.srv.MergeCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "mod-2", calls[0].ModelID)
	assert.Equal(t, "mod-1", calls[1].ModelID)
	assert.Equal(t, 3, calls[1].Quantity)
}

func TestReconciler_ClearsBufferEvenWhenMergesFail(t *testing.T) {
	fix := newReconcileFixture(t)

	// Neither model exists on the server, so every merge is rejected.
	fix.guest.Add(Selection{ModelID: "ghost-1"}, 2)
	fix.guest.Add(Selection{ModelID: "ghost-2"}, 1)

	fix.reconciler.MergeLocalIntoRemote(context.Background())

	// Both lines were attempted; neither failure aborted the pass.
	assert.Len(t, fix.srv.MergeCalls(), 2)

	// The persisted guest cart is gone regardless of the failures.
	assert.Empty(t, fix.guest.Lines())
	_, ok, err := fix.store.Get(context.Background(), localstore.KeyGuestCart)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReconciler_EmptyBufferStillRefreshesMirror(t *testing.T) {
	fix := newReconcileFixture(t)

	// Seed a server-side row out of band.
	require.NoError(t, fix.client.CreateCartItem(context.Background(), "mod-1", "", 1))

	fix.reconciler.MergeLocalIntoRemote(context.Background())

	assert.Empty(t, fix.srv.MergeCalls())
	assert.Len(t, fix.mirror.Lines(), 1)
}
