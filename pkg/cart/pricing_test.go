// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lithoform/lithoform/pkg/api"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  Snapshot
	}{
		{
			name: "two lines with shipping",
			lines: []Line{
				{Quantity: 2, UnitPrice: 5},
				{Quantity: 1, UnitPrice: 3},
			},
			want: Snapshot{ItemCount: 3, Subtotal: 13, Total: 23},
		},
		{
			name: "empty cart charges no shipping",
			want: Snapshot{},
		},
		{
			name: "free items still count but total stays zero",
			lines: []Line{
				{Quantity: 4, UnitPrice: 0},
			},
			want: Snapshot{ItemCount: 4},
		},
		{
			name: "single line",
			lines: []Line{
				{Quantity: 1, UnitPrice: 0.5},
			},
			want: Snapshot{ItemCount: 1, Subtotal: 0.5, Total: 10.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Summarize(tt.lines)
			assert.Equal(t, tt.want.ItemCount, snap.ItemCount)
			assert.InDelta(t, tt.want.Subtotal, snap.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.Total, snap.Total, 1e-9)
		})
	}
}

func TestResolveUnitPrice(t *testing.T) {
	tests := []struct {
		name string
		item api.CartItem
		want float64
	}{
		{"estimated wins", api.CartItem{EstimatedPrice: 19.99, MaterialPrice: 5}, 19.99},
		{"material price fallback", api.CartItem{MaterialPrice: 5}, 5},
		{"no price reads as free", api.CartItem{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, resolveUnitPrice(tt.item), 1e-9)
		})
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, clampQuantity(0))
	assert.Equal(t, 1, clampQuantity(-7))
	assert.Equal(t, 1, clampQuantity(1))
	assert.Equal(t, 12, clampQuantity(12))
}
