// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/cart"
)

func TestParseLineID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    cart.LineID
		wantErr bool
	}{
		{name: "local line", input: "local-3", want: cart.LocalLineID(3)},
		{name: "local with whitespace", input: "  local-7 ", want: cart.LocalLineID(7)},
		{name: "server row id", input: "42", want: cart.RemoteLineID("42")},
		{name: "server uuid", input: "c1f3", want: cart.RemoteLineID("c1f3")},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "malformed local suffix", input: "local-abc", wantErr: true},
		{name: "negative local seq", input: "local--1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLineID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineIDRoundTrips(t *testing.T) {
	for _, id := range []cart.LineID{
		cart.LocalLineID(1),
		cart.LocalLineID(9000),
		cart.RemoteLineID(api.ID("row-17")),
	} {
		parsed, err := parseLineID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}

func TestLineLabel(t *testing.T) {
	line := cart.Line{
		ID:           cart.LocalLineID(1),
		ModelID:      "mod-1",
		ModelName:    "Hex Vase",
		MaterialName: "PLA",
		Quantity:     2,
		UnitPrice:    5,
	}
	assert.Equal(t, "Hex Vase / PLA  x2  @5.00", lineLabel(line))

	// Server rows sometimes arrive without denormalized names.
	line.ModelName = ""
	line.MaterialName = ""
	assert.Equal(t, "mod-1  x2  @5.00", lineLabel(line))
}
