// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/logging"
)

// Mirror is the client's cached copy of the server-authoritative
// cart.
//
// Every operation short-circuits to a no-op while no session token
// exists; the Mirror never issues a request it knows will be
// rejected. Mutations follow write-then-refresh: the server applies
// the change and the next fetch replaces the whole line list, so the
// mirror never drifts from the server by more than one round trip.
//
// A failed fetch resets the line list to empty and raises the
// Unavailable flag; callers present that state as "cart unavailable",
// not as an empty cart. An unauthenticated response clears the flag
// and the lines both, since a dead session means the guest buffer is
// authoritative again.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Last response wins when
// mutations race; there is no request fencing.
type Mirror struct {
	mu     sync.Mutex
	client *api.Client
	tokens api.TokenSource
	log    *logging.Logger

	lines       []Line
	unavailable bool
	lastErr     error
}

// NewMirror returns a mirror that issues requests through client and
// consults tokens to decide whether a session exists.
func NewMirror(client *api.Client, tokens api.TokenSource, log *logging.Logger) *Mirror {
	if log == nil {
		log = logging.Default()
	}
	return &Mirror{client: client, tokens: tokens, log: log}
}

// hasSession reports whether a token is currently available.
func (m *Mirror) hasSession() bool {
	return m.tokens != nil && m.tokens.Token() != ""
}

// Refresh replaces the line list with the server's current cart.
//
// Without a session this resets to empty and returns nil. A fetch
// failure also resets to empty, never leaving stale lines behind,
// and records the failure: Unavailable() reports true and the error
// is returned for callers that want it. An unauthenticated response
// is not a failure; it reads as "no remote cart".
func (m *Mirror) Refresh(ctx context.Context) error {
	if !m.hasSession() {
		m.mu.Lock()
		m.lines = nil
		m.unavailable = false
		m.lastErr = nil
		m.mu.Unlock()
		return nil
	}

	items, err := m.client.ListCart(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.lines = nil
		if errors.Is(err, api.ErrUnauthenticated) {
			m.unavailable = false
			m.lastErr = nil
			return nil
		}
		m.unavailable = true
		m.lastErr = err
		refreshFailures.Inc()
		m.log.Warn("cart refresh failed", "error", err)
		return err
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, lineFromItem(item))
	}
	m.lines = lines
	m.unavailable = false
	m.lastErr = nil
	return nil
}

// Add creates a server cart row for the selection and resynchronizes.
// The server merges duplicate (model, material) pairs into one row.
func (m *Mirror) Add(ctx context.Context, sel Selection, quantity int) error {
	if !m.hasSession() {
		return nil
	}
	if err := m.client.CreateCartItem(ctx, sel.ModelID, sel.MaterialID, clampQuantity(quantity)); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Remove deletes a server cart row and resynchronizes. Lines that
// were never synced have no server row to delete.
func (m *Mirror) Remove(ctx context.Context, id LineID) error {
	if !m.hasSession() || !id.IsRemote() {
		return nil
	}
	if err := m.client.DeleteCartItem(ctx, id.ServerID()); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// SetQuantity updates a row's quantity, clamped to a minimum of one
// before transmission, then resynchronizes.
func (m *Mirror) SetQuantity(ctx context.Context, id LineID, quantity int) error {
	if !m.hasSession() || !id.IsRemote() {
		return nil
	}
	if err := m.client.UpdateCartQuantity(ctx, id.ServerID(), clampQuantity(quantity)); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Clear deletes every server row one by one; the API has no bulk
// primitive. The pass starts from a fresh fetch rather than the
// cached list, which may predate this process. A failure partway
// stops the pass and leaves the server cart partially cleared; the
// rows removed before the failure stay removed and the error is
// recorded. The mirror resynchronizes either way.
func (m *Mirror) Clear(ctx context.Context) error {
	if !m.hasSession() {
		return nil
	}

	if err := m.Refresh(ctx); err != nil {
		return err
	}
	lines := m.Lines()

	var clearErr error
	for _, line := range lines {
		if !line.ID.IsRemote() {
			continue
		}
		if err := m.client.DeleteCartItem(ctx, line.ID.ServerID()); err != nil {
			clearErr = err
			m.log.Warn("cart clear stopped partway", "line_id", line.ID.String(), "error", err)
			break
		}
	}

	if err := m.Refresh(ctx); err != nil && clearErr == nil {
		clearErr = err
	}
	if clearErr != nil {
		m.mu.Lock()
		m.lastErr = clearErr
		m.mu.Unlock()
	}
	return clearErr
}

// Lines returns a copy of the current line list in server order.
func (m *Mirror) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Unavailable reports whether the last fetch failed. While true the
// empty line list means "unknown", not "empty".
func (m *Mirror) Unavailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unavailable
}

// Err returns the most recent recorded failure, if any.
func (m *Mirror) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Reset drops all cached lines and flags without contacting the
// server. Called on logout.
func (m *Mirror) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
	m.unavailable = false
	m.lastErr = nil
}

// Summary derives the totals for the mirrored lines.
func (m *Mirror) Summary() Snapshot {
	return Summarize(m.Lines())
}
