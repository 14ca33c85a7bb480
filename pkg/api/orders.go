// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"fmt"
	"net/http"
)

// OrderRequest is the order creation payload.
type OrderRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Notes           string `json:"notes,omitempty"`
}

// ListOrders fetches the authenticated user's orders.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	raw, err := c.getList(ctx, "orders.list", "/api/orders/")
	if err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope[Order](raw)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id ID) (*Order, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: order id is empty", ErrInvalidInput)
	}
	var order Order
	if err := c.do(ctx, "orders.get", http.MethodGet, "/api/orders/"+id.String()+"/", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder places an order from the current server cart.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var order Order
	if err := c.do(ctx, "orders.create", http.MethodPost, "/api/orders/", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels an order, returning its updated record.
func (c *Client) CancelOrder(ctx context.Context, id ID) (*Order, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: order id is empty", ErrInvalidInput)
	}
	var order Order
	if err := c.do(ctx, "orders.cancel", http.MethodPost, "/api/orders/"+id.String()+"/cancel/", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
