// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

// FlatShippingFee is the fixed surcharge added to any non-empty
// cart. An empty cart ships nothing and is charged nothing.
const FlatShippingFee = 10.0

// Snapshot is the whole-cart aggregate consumed by checkout and
// display code. It is derived, never stored.
type Snapshot struct {
	// ItemCount is the sum of line quantities.
	ItemCount int

	// Subtotal is the sum of quantity times unit price per line.
	Subtotal float64

	// Total is Subtotal plus the flat shipping fee, or zero for an
	// empty cart.
	Total float64
}

// Summarize derives the totals for a line collection.
func Summarize(lines []Line) Snapshot {
	var snap Snapshot
	for _, line := range lines {
		snap.ItemCount += line.Quantity
		snap.Subtotal += float64(line.Quantity) * line.UnitPrice
	}
	if snap.Subtotal > 0 {
		snap.Total = snap.Subtotal + FlatShippingFee
	}
	return snap
}
