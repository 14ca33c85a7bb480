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
	"net/url"
)

// ListMaterials fetches the printable materials. Public endpoint.
func (c *Client) ListMaterials(ctx context.Context) ([]Material, error) {
	raw, err := c.getList(ctx, "materials.list", "/api/materials/")
	if err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope[Material](raw)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// ListPublicModels fetches the public model catalog.
//
// params carries server-side filters and the page cursor; nil means
// the first page with no filters. The full Envelope is returned so
// callers can keep the pagination state.
func (c *Client) ListPublicModels(ctx context.Context, params url.Values) (Envelope[Model], error) {
	path := "/api/public-models/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	raw, err := c.getList(ctx, "models.public_list", path)
	if err != nil {
		return Envelope[Model]{}, err
	}
	return DecodeEnvelope[Model](raw)
}

// GetPublicModel fetches one public model listing.
func (c *Client) GetPublicModel(ctx context.Context, id ID) (*Model, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	var model Model
	if err := c.do(ctx, "models.public_get", http.MethodGet, "/api/public-models/"+id.String()+"/", nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// GetModel fetches one model through the authenticated endpoint,
// which also resolves the caller's private models.
func (c *Client) GetModel(ctx context.Context, id ID) (*Model, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	var model Model
	if err := c.do(ctx, "models.get", http.MethodGet, "/api/models/"+id.String()+"/", nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// MyModels fetches the models owned by the authenticated user.
func (c *Client) MyModels(ctx context.Context) ([]Model, error) {
	raw, err := c.getList(ctx, "models.mine", "/api/models/my_models/")
	if err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope[Model](raw)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// CreateModel uploads a new model.
//
// fields carries the metadata (name, description, ...) and files the
// mesh plus any preview images.
func (c *Client) CreateModel(ctx context.Context, fields map[string]string, files []FormFile) (*Model, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: model upload requires at least one file", ErrInvalidInput)
	}
	var model Model
	if err := c.doMultipart(ctx, "models.create", http.MethodPost, "/api/models/", fields, files, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// UpdateModel patches model metadata.
func (c *Client) UpdateModel(ctx context.Context, id ID, patch map[string]any) (*Model, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	var model Model
	if err := c.do(ctx, "models.update", http.MethodPatch, "/api/models/"+id.String()+"/", patch, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// DeleteModel removes a model.
func (c *Client) DeleteModel(ctx context.Context, id ID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	return c.do(ctx, "models.delete", http.MethodDelete, "/api/models/"+id.String()+"/", nil, nil)
}

// SubmitModelForReview moves a model into the review queue.
func (c *Client) SubmitModelForReview(ctx context.Context, id ID) (*Model, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	var model Model
	if err := c.do(ctx, "models.submit_review", http.MethodPost, "/api/models/"+id.String()+"/submit_for_review/", nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// ModelReviewLogs fetches a model's review history.
func (c *Client) ModelReviewLogs(ctx context.Context, id ID) ([]ReviewLog, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	raw, err := c.getList(ctx, "models.review_logs", "/api/models/"+id.String()+"/review_logs/")
	if err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope[ReviewLog](raw)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// UploadModelImages attaches preview images to an existing model.
func (c *Client) UploadModelImages(ctx context.Context, id ID, files []FormFile) error {
	if id.IsZero() {
		return fmt.Errorf("%w: model id is empty", ErrInvalidInput)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no images to upload", ErrInvalidInput)
	}
	return c.doMultipart(ctx, "models.upload_images", http.MethodPost, "/api/models/"+id.String()+"/upload_images/", nil, files, nil)
}
