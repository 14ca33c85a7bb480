// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package orders tracks a customer's order lifecycle.
package orders

import (
	"context"
	"sync"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/logging"
)

// Store caches the signed-in customer's orders.
//
// The server owns every transition past PENDING; the store only
// mirrors. Placing an order consumes the server-side cart, so the
// caller refreshes the cart mirror afterward.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	client *api.Client
	log    *logging.Logger
	orders []api.Order
}

// New returns an empty order store.
func New(client *api.Client, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Default()
	}
	return &Store{client: client, log: log}
}

// Refresh replaces the cache with the server's order list.
func (s *Store) Refresh(ctx context.Context) error {
	orders, err := s.client.ListOrders(ctx)
	if err != nil {
		s.log.Warn("order list fetch failed", "error", err)
		return err
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// All returns the cached orders in server order.
func (s *Store) All() []api.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// isTerminal reports whether an order can no longer change.
func isTerminal(status string) bool {
	return status == api.OrderStatusDelivered || status == api.OrderStatusCancelled
}

// Open returns the cached orders still moving through fulfillment.
func (s *Store) Open() []api.Order {
	var out []api.Order
	for _, o := range s.All() {
		if !isTerminal(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// Completed returns the cached orders that reached a terminal state.
func (s *Store) Completed() []api.Order {
	var out []api.Order
	for _, o := range s.All() {
		if isTerminal(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// Get fetches one order from the server.
func (s *Store) Get(ctx context.Context, id api.ID) (*api.Order, error) {
	return s.client.GetOrder(ctx, id)
}

// Place submits the current server-side cart as an order and
// refreshes the cache.
func (s *Store) Place(ctx context.Context, req api.OrderRequest) (*api.Order, error) {
	order, err := s.client.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("order refresh after placement failed", "error", err)
	}
	return order, nil
}

// Cancel cancels a pending order and refreshes the cache.
func (s *Store) Cancel(ctx context.Context, id api.ID) (*api.Order, error) {
	order, err := s.client.CancelOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("order refresh after cancel failed", "error", err)
	}
	return order, nil
}
