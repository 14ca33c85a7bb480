// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog exposes the browsable material and model listings.
package catalog

import (
	"context"
	"sync"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/logging"
)

// defaultMaterials is the built-in material set shown when the
// server list has never been fetched successfully. Prices here are
// display placeholders; the server recomputes everything at order
// time.
var defaultMaterials = []api.Material{
	{ID: "pla", Name: "PLA", PricePerGram: 0.8, IsActive: true},
	{ID: "petg", Name: "PETG", PricePerGram: 1.0, IsActive: true},
	{ID: "resin", Name: "Resin", PricePerGram: 2.4, IsActive: true},
}

// Materials caches the printable material list.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Materials struct {
	mu     sync.Mutex
	client *api.Client
	log    *logging.Logger

	materials []api.Material
	loaded    bool
}

// NewMaterials returns an unloaded material cache.
func NewMaterials(client *api.Client, log *logging.Logger) *Materials {
	if log == nil {
		log = logging.Default()
	}
	return &Materials{client: client, log: log}
}

// Refresh replaces the cache with the server's material list. On
// failure the previous cache (or the built-in default set) stays
// visible and the error is returned.
func (m *Materials) Refresh(ctx context.Context) error {
	materials, err := m.client.ListMaterials(ctx)
	if err != nil {
		m.log.Warn("material list fetch failed", "error", err)
		return err
	}

	m.mu.Lock()
	m.materials = materials
	m.loaded = true
	m.mu.Unlock()
	return nil
}

// All returns the cached materials, or the default set before the
// first successful refresh.
func (m *Materials) All() []api.Material {
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.materials
	if !m.loaded {
		src = defaultMaterials
	}
	out := make([]api.Material, len(src))
	copy(out, src)
	return out
}

// Active returns only the materials currently offered for printing.
func (m *Materials) Active() []api.Material {
	var out []api.Material
	for _, mat := range m.All() {
		if mat.IsActive {
			out = append(out, mat)
		}
	}
	return out
}

// Get looks a material up by id.
func (m *Materials) Get(id api.ID) (api.Material, bool) {
	for _, mat := range m.All() {
		if mat.ID == id {
			return mat, true
		}
	}
	return api.Material{}, false
}
