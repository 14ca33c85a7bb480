// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package cart implements the two cart representations and the logic
// that moves lines between them.
//
// A signed-out visitor accumulates lines in a Guest buffer persisted
// to the local store. A signed-in user works against the Mirror, the
// client's cached copy of the server-authoritative cart. The
// Reconciler migrates guest lines into the mirror exactly once, at
// the moment a session is established. Summarize derives the totals
// shown at checkout from whichever collection is active.
package cart

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lithoform/lithoform/pkg/api"
)

// lineTag discriminates the two identifier variants.
type lineTag uint8

const (
	tagLocal lineTag = iota
	tagRemote
)

// LineID identifies a cart line in either representation.
//
// A local identifier carries the sequence number assigned when the
// line entered the guest buffer; a remote identifier carries the
// server-assigned row id. The variants never compare equal, so a
// guest line can never be mistaken for a synced one.
type LineID struct {
	tag    lineTag
	seq    uint64
	server api.ID
}

// LocalLineID returns the identifier of an unsynced guest line.
func LocalLineID(seq uint64) LineID {
	return LineID{tag: tagLocal, seq: seq}
}

// RemoteLineID returns the identifier of a server-side cart row.
func RemoteLineID(id api.ID) LineID {
	return LineID{tag: tagRemote, server: id}
}

// IsLocal reports whether the line exists only in the guest buffer.
func (id LineID) IsLocal() bool { return id.tag == tagLocal }

// IsRemote reports whether the line is backed by a server row.
func (id LineID) IsRemote() bool { return id.tag == tagRemote }

// ServerID returns the server row id, or the zero ID for local lines.
func (id LineID) ServerID() api.ID {
	if id.tag != tagRemote {
		return ""
	}
	return id.server
}

// String renders the identifier for logs.
func (id LineID) String() string {
	if id.tag == tagLocal {
		return "local-" + strconv.FormatUint(id.seq, 10)
	}
	return id.server.String()
}

// lineIDJSON is the persisted wire form of a LineID.
type lineIDJSON struct {
	Kind string `json:"kind"`
	Seq  uint64 `json:"seq,omitempty"`
	ID   api.ID `json:"id,omitempty"`
}

// MarshalJSON emits the tagged form.
func (id LineID) MarshalJSON() ([]byte, error) {
	if id.tag == tagLocal {
		return json.Marshal(lineIDJSON{Kind: "local", Seq: id.seq})
	}
	return json.Marshal(lineIDJSON{Kind: "remote", ID: id.server})
}

// UnmarshalJSON parses the tagged form.
func (id *LineID) UnmarshalJSON(data []byte) error {
	var raw lineIDJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "local":
		*id = LocalLineID(raw.Seq)
	case "remote":
		*id = RemoteLineID(raw.ID)
	default:
		return fmt.Errorf("unknown line id kind %q", raw.Kind)
	}
	return nil
}

// Selection is the (model, material) choice behind a cart line,
// together with the display fields and unit price captured at add
// time.
type Selection struct {
	ModelID      api.ID
	ModelName    string
	MaterialID   api.ID
	MaterialName string
	UnitPrice    float64
	Notes        string
}

// Line is one row in either cart representation.
//
// Exactly one line exists per distinct (ModelID, MaterialID) pair
// within a single cart; adding the same pair again increments
// Quantity instead of appending a duplicate.
type Line struct {
	ID           LineID  `json:"id"`
	ModelID      api.ID  `json:"model_id"`
	ModelName    string  `json:"model_name"`
	MaterialID   api.ID  `json:"material_id"`
	MaterialName string  `json:"material_name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Notes        string  `json:"notes,omitempty"`
}

// matches reports whether the line holds the given selection pair.
func (l Line) matches(modelID, materialID api.ID) bool {
	return l.ModelID == modelID && l.MaterialID == materialID
}

// clampQuantity enforces the minimum line quantity of one.
func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// resolveUnitPrice picks a unit price from a server cart row.
//
// Resolution order: estimated price, then material price, then zero.
// The result is never negative; missing price data reads as free
// rather than failing the whole cart fetch.
func resolveUnitPrice(item api.CartItem) float64 {
	if item.EstimatedPrice > 0 {
		return item.EstimatedPrice.Float64()
	}
	if item.MaterialPrice > 0 {
		return item.MaterialPrice.Float64()
	}
	return 0
}

// lineFromItem translates a server cart row into the Line shape.
func lineFromItem(item api.CartItem) Line {
	return Line{
		ID:           RemoteLineID(item.ID),
		ModelID:      item.Model,
		ModelName:    item.ModelName,
		MaterialID:   item.Material,
		MaterialName: item.MaterialName,
		Quantity:     clampQuantity(item.Quantity),
		UnitPrice:    resolveUnitPrice(item),
		Notes:        item.Notes,
	}
}
