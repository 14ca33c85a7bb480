// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package app assembles the client state layer into one context
// object.
//
// The Context is constructed once at process start and passed to
// whatever drives it (the CLI, tests). It owns the local store, the
// API client, and every state component, and wires the cross-cutting
// behavior: cart reconciliation fires on login, the cart mirror
// resets on logout, and cart operations route to the guest buffer or
// the mirror depending on session state. There are no package-level
// singletons.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/cart"
	"github.com/lithoform/lithoform/pkg/catalog"
	"github.com/lithoform/lithoform/pkg/localstore"
	"github.com/lithoform/lithoform/pkg/logging"
	"github.com/lithoform/lithoform/pkg/orders"
	"github.com/lithoform/lithoform/pkg/session"
)

// Config carries everything a Context needs at construction.
type Config struct {
	// APIBaseURL is the Print API root, e.g. "https://api.lithoform.io".
	APIBaseURL string

	// DataDir is the directory for the local store. Empty keeps all
	// persisted state in memory, which tests use.
	DataDir string

	// Timeout bounds each API request. Zero uses the client default.
	Timeout time.Duration

	// Logger is the application logger. Nil uses the default.
	Logger *logging.Logger
}

// Context is the assembled client state layer.
type Context struct {
	Log    *logging.Logger
	Local  *localstore.Store
	Client *api.Client

	Session   *session.Store
	Guest     *cart.Guest
	Mirror    *cart.Mirror
	Materials *catalog.Materials
	Models    *catalog.Models
	Orders    *orders.Store

	reconciler *cart.Reconciler
}

// New builds and wires a Context.
func New(cfg Config) (*Context, error) {
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("app: API base URL is required")
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}

	var (
		local *localstore.Store
		err   error
	)
	if cfg.DataDir == "" {
		local, err = localstore.OpenInMemory()
	} else {
		local, err = localstore.Open(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	opts := []api.Option{api.WithLogger(log)}
	if cfg.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.Timeout))
	}
	client := api.New(cfg.APIBaseURL, opts...)

	sess := session.New(client, local, log)
	client.SetTokenSource(sess)

	guest := cart.NewGuest(local, log)
	mirror := cart.NewMirror(client, sess, log)
	reconciler := cart.NewReconciler(client, guest, mirror, log)

	// Reconciliation runs once per authentication transition, never
	// at startup. A restored session starts with an unfetched mirror
	// instead.
	sess.OnLogin(func(ctx context.Context) {
		reconciler.MergeLocalIntoRemote(ctx)
	})
	sess.OnLogout(func() {
		mirror.Reset()
	})

	return &Context{
		Log:        log,
		Local:      local,
		Client:     client,
		Session:    sess,
		Guest:      guest,
		Mirror:     mirror,
		Materials:  catalog.NewMaterials(client, log),
		Models:     catalog.NewModels(client, log),
		Orders:     orders.New(client, log),
		reconciler: reconciler,
	}, nil
}

// Close releases the local store. The Context is unusable afterward.
func (a *Context) Close() error {
	return a.Local.Close()
}

// =============================================================================
// Active-Cart Routing
// =============================================================================

// RefreshCart resynchronizes the active cart. For a guest this is a
// no-op: the buffer is already local.
func (a *Context) RefreshCart(ctx context.Context) error {
	if !a.Session.Authenticated() {
		return nil
	}
	return a.Mirror.Refresh(ctx)
}

// CartLines returns the active cart's lines.
func (a *Context) CartLines() []cart.Line {
	if a.Session.Authenticated() {
		return a.Mirror.Lines()
	}
	return a.Guest.Lines()
}

// AddToCart adds a selection to the active cart.
func (a *Context) AddToCart(ctx context.Context, sel cart.Selection, quantity int) error {
	if a.Session.Authenticated() {
		return a.Mirror.Add(ctx, sel, quantity)
	}
	a.Guest.Add(sel, quantity)
	return nil
}

// RemoveFromCart removes a line from the active cart.
func (a *Context) RemoveFromCart(ctx context.Context, id cart.LineID) error {
	if a.Session.Authenticated() {
		return a.Mirror.Remove(ctx, id)
	}
	a.Guest.Remove(id)
	return nil
}

// SetCartQuantity updates a line's quantity in the active cart.
func (a *Context) SetCartQuantity(ctx context.Context, id cart.LineID, quantity int) error {
	if a.Session.Authenticated() {
		return a.Mirror.SetQuantity(ctx, id, quantity)
	}
	a.Guest.SetQuantity(id, quantity)
	return nil
}

// ClearCart empties the active cart.
func (a *Context) ClearCart(ctx context.Context) error {
	if a.Session.Authenticated() {
		return a.Mirror.Clear(ctx)
	}
	a.Guest.Clear()
	return nil
}

// CartSummary derives the totals for the active cart.
func (a *Context) CartSummary() cart.Snapshot {
	return cart.Summarize(a.CartLines())
}

// CartUnavailable reports whether the active cart's contents are
// unknown because the last fetch failed. Always false for a guest.
func (a *Context) CartUnavailable() bool {
	return a.Session.Authenticated() && a.Mirror.Unavailable()
}
