// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoform/lithoform/pkg/api"
)

func TestLineID_Variants(t *testing.T) {
	local := LocalLineID(3)
	assert.True(t, local.IsLocal())
	assert.False(t, local.IsRemote())
	assert.Equal(t, "local-3", local.String())
	assert.True(t, local.ServerID().IsZero())

	remote := RemoteLineID("88")
	assert.True(t, remote.IsRemote())
	assert.Equal(t, api.ID("88"), remote.ServerID())
	assert.Equal(t, "88", remote.String())

	// The variants never compare equal, even with matching payloads.
	assert.NotEqual(t, LocalLineID(1), RemoteLineID("1"))
	assert.Equal(t, LocalLineID(7), LocalLineID(7))
}

func TestLineID_JSONRoundTrip(t *testing.T) {
	for _, id := range []LineID{LocalLineID(42), RemoteLineID("row-9")} {
		data, err := json.Marshal(id)
		require.NoError(t, err)

		var back LineID
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, id, back)
	}

	var bad LineID
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"mystery"}`), &bad))
}

func TestLineFromItem(t *testing.T) {
	line := lineFromItem(api.CartItem{
		ID:             "90",
		Model:          "mod-1",
		ModelName:      "Bracket",
		Material:       "mat-1",
		MaterialName:   "PLA",
		Quantity:       0,
		EstimatedPrice: 12.5,
	})

	assert.Equal(t, RemoteLineID("90"), line.ID)
	assert.Equal(t, api.ID("mod-1"), line.ModelID)
	assert.Equal(t, "PLA", line.MaterialName)
	assert.Equal(t, 1, line.Quantity)
	assert.InDelta(t, 12.5, line.UnitPrice, 1e-9)
}
