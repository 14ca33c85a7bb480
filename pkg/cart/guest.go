// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

import (
	"context"
	"sync"

	"github.com/lithoform/lithoform/pkg/localstore"
	"github.com/lithoform/lithoform/pkg/logging"
)

// Guest is the cart of a signed-out visitor.
//
// Lines live in memory and are rewritten to the local store after
// every mutation, so the cart survives process restarts. The buffer
// is only consulted while no session token exists; once the user
// signs in the Reconciler drains it into the Mirror.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Guest struct {
	mu      sync.Mutex
	store   *localstore.Store
	log     *logging.Logger
	lines   []Line
	nextSeq uint64
}

// NewGuest returns a guest buffer backed by the given store and loads
// any previously persisted lines. Corrupt or missing persisted data
// starts the buffer empty; it is never fatal.
func NewGuest(store *localstore.Store, log *logging.Logger) *Guest {
	if log == nil {
		log = logging.Default()
	}
	g := &Guest{store: store, log: log, nextSeq: 1}
	g.load()
	return g
}

// load restores the persisted line list. Called once from NewGuest.
func (g *Guest) load() {
	var lines []Line
	ok, err := g.store.GetJSON(context.Background(), localstore.KeyGuestCart, &lines)
	if err != nil {
		g.log.Warn("guest cart load failed, starting empty", "error", err)
		return
	}
	if !ok {
		return
	}
	for _, line := range lines {
		if line.ID.IsLocal() && line.ID.seq >= g.nextSeq {
			g.nextSeq = line.ID.seq + 1
		}
	}
	g.lines = lines
}

// save rewrites the full line list. Callers hold g.mu.
func (g *Guest) save() {
	if err := g.store.PutJSON(context.Background(), localstore.KeyGuestCart, g.lines); err != nil {
		g.log.Warn("guest cart save failed", "error", err)
	}
}

// Add records quantity units of the given selection.
//
// An existing line with the same (model, material) pair gains the
// quantity; otherwise a new line is appended with the next local
// sequence number. The buffer is persisted afterward either way.
func (g *Guest) Add(sel Selection, quantity int) Line {
	quantity = clampQuantity(quantity)

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.lines {
		if g.lines[i].matches(sel.ModelID, sel.MaterialID) {
			g.lines[i].Quantity += quantity
			g.save()
			return g.lines[i]
		}
	}

	line := Line{
		ID:           LocalLineID(g.nextSeq),
		ModelID:      sel.ModelID,
		ModelName:    sel.ModelName,
		MaterialID:   sel.MaterialID,
		MaterialName: sel.MaterialName,
		Quantity:     quantity,
		UnitPrice:    sel.UnitPrice,
		Notes:        sel.Notes,
	}
	g.nextSeq++
	g.lines = append(g.lines, line)
	g.save()
	return line
}

// Remove deletes the line with the given identifier. Removing an
// absent line is a no-op.
func (g *Guest) Remove(id LineID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.lines {
		if g.lines[i].ID == id {
			g.lines = append(g.lines[:i], g.lines[i+1:]...)
			g.save()
			return
		}
	}
}

// SetQuantity updates a line's quantity, clamped to a minimum of
// one. Zero or negative never removes the line.
func (g *Guest) SetQuantity(id LineID, quantity int) {
	quantity = clampQuantity(quantity)

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.lines {
		if g.lines[i].ID == id {
			g.lines[i].Quantity = quantity
			g.save()
			return
		}
	}
}

// Clear drops every line, in memory and in the persisted copy.
func (g *Guest) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lines = nil
	if err := g.store.Delete(context.Background(), localstore.KeyGuestCart); err != nil {
		g.log.Warn("guest cart clear failed", "error", err)
	}
}

// Lines returns a copy of the current line list in insertion order.
func (g *Guest) Lines() []Line {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}

// Summary derives the totals for the buffered lines.
func (g *Guest) Summary() Snapshot {
	return Summarize(g.Lines())
}
