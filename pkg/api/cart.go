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

// cartCreateRequest is the standard cart row creation payload.
type cartCreateRequest struct {
	Model    ID  `json:"model"`
	Material *ID `json:"material"`
	Quantity int `json:"quantity" validate:"min=1"`
}

// cartMergeRequest is the merge-add payload used during guest cart
// reconciliation. Unlike plain creation, merge-add increments an
// existing (model, material) row server-side instead of rejecting
// the duplicate.
type cartMergeRequest struct {
	ModelID    ID  `json:"model_id"`
	MaterialID *ID `json:"material_id"`
	Quantity   int `json:"quantity" validate:"min=1"`
}

// cartQuantityRequest is the quantity update payload.
type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

// ListCart fetches the authenticated user's cart rows.
func (c *Client) ListCart(ctx context.Context) ([]CartItem, error) {
	raw, err := c.getList(ctx, "cart.list", "/api/cart/")
	if err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope[CartItem](raw)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// CreateCartItem adds a row to the server cart.
//
// materialID may be zero when the model's default material applies.
func (c *Client) CreateCartItem(ctx context.Context, modelID, materialID ID, quantity int) error {
	if modelID.IsZero() {
		return fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	req := cartCreateRequest{Model: modelID, Quantity: quantity}
	if !materialID.IsZero() {
		req.Material = &materialID
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return c.do(ctx, "cart.create", http.MethodPost, "/api/cart/", req, nil)
}

// DeleteCartItem removes one row from the server cart.
func (c *Client) DeleteCartItem(ctx context.Context, id ID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: cart item id is empty", ErrInvalidInput)
	}
	return c.do(ctx, "cart.delete", http.MethodDelete, "/api/cart/"+id.String()+"/", nil, nil)
}

// UpdateCartQuantity sets the quantity of one server cart row.
//
// The caller clamps to a minimum of 1 before calling; the payload
// validator enforces it again.
func (c *Client) UpdateCartQuantity(ctx context.Context, id ID, quantity int) error {
	if id.IsZero() {
		return fmt.Errorf("%w: cart item id is empty", ErrInvalidInput)
	}
	req := cartQuantityRequest{Quantity: quantity}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return c.do(ctx, "cart.quantity", http.MethodPost, "/api/cart/"+id.String()+"/update_quantity/", req, nil)
}

// MergeAddCartItem merge-adds a guest cart line into the server cart.
func (c *Client) MergeAddCartItem(ctx context.Context, modelID, materialID ID, quantity int) error {
	if modelID.IsZero() {
		return fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	req := cartMergeRequest{ModelID: modelID, Quantity: quantity}
	if !materialID.IsZero() {
		req.MaterialID = &materialID
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return c.do(ctx, "cart.merge_add", http.MethodPost, "/api/cart/add_to_cart/", req, nil)
}
