// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/logging"
)

// BrowseOptions narrow a public model listing.
type BrowseOptions struct {
	// Search filters by name or description, server-side.
	Search string

	// Page selects one page when the server paginates. Zero means
	// the first page.
	Page int

	// FeaturedOnly limits the listing to featured models.
	FeaturedOnly bool
}

// values renders the options as query parameters.
func (o BrowseOptions) values() url.Values {
	params := url.Values{}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if o.Page > 1 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.FeaturedOnly {
		params.Set("is_featured", "true")
	}
	return params
}

// Models is the model catalog and the upload workflow for a maker's
// own models. It holds no cache: listings paginate server-side and
// go stale quickly.
type Models struct {
	client *api.Client
	log    *logging.Logger
}

// NewModels returns a model catalog over the given client.
func NewModels(client *api.Client, log *logging.Logger) *Models {
	if log == nil {
		log = logging.Default()
	}
	return &Models{client: client, log: log}
}

// Browse lists public models. The returned envelope carries the page
// cursors when the server paginates.
func (s *Models) Browse(ctx context.Context, opts BrowseOptions) (api.Envelope[api.Model], error) {
	return s.client.ListPublicModels(ctx, opts.values())
}

// Get fetches one model. The public endpoint is tried first; when it
// fails and a session exists, the authenticated endpoint is tried,
// which also resolves the caller's own private and draft models.
func (s *Models) Get(ctx context.Context, id api.ID) (*api.Model, error) {
	model, err := s.client.GetPublicModel(ctx, id)
	if err == nil {
		return model, nil
	}
	if !s.client.HasSession() {
		return nil, err
	}
	s.log.Debug("public model lookup failed, trying authenticated endpoint",
		"model_id", id.String(), "error", err)
	return s.client.GetModel(ctx, id)
}

// Featured lists the featured public models.
func (s *Models) Featured(ctx context.Context) ([]api.Model, error) {
	env, err := s.Browse(ctx, BrowseOptions{FeaturedOnly: true})
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// Recent lists public models newest first, capped at limit. A
// non-positive limit returns the whole first page.
func (s *Models) Recent(ctx context.Context, limit int) ([]api.Model, error) {
	env, err := s.Browse(ctx, BrowseOptions{})
	if err != nil {
		return nil, err
	}
	models := env.Items
	sort.SliceStable(models, func(i, j int) bool {
		return models[i].CreatedAt.After(models[j].CreatedAt)
	})
	if limit > 0 && len(models) > limit {
		models = models[:limit]
	}
	return models, nil
}

// Mine lists the signed-in maker's own models, drafts included.
func (s *Models) Mine(ctx context.Context) ([]api.Model, error) {
	return s.client.MyModels(ctx)
}

// Upload creates a draft model from metadata fields and at least one
// model file.
func (s *Models) Upload(ctx context.Context, fields map[string]string, files []api.FormFile) (*api.Model, error) {
	return s.client.CreateModel(ctx, fields, files)
}

// Update patches a model's metadata.
func (s *Models) Update(ctx context.Context, id api.ID, patch map[string]any) (*api.Model, error) {
	return s.client.UpdateModel(ctx, id, patch)
}

// Delete removes a model.
func (s *Models) Delete(ctx context.Context, id api.ID) error {
	return s.client.DeleteModel(ctx, id)
}

// SubmitForReview moves a draft into the review queue.
func (s *Models) SubmitForReview(ctx context.Context, id api.ID) (*api.Model, error) {
	return s.client.SubmitModelForReview(ctx, id)
}

// ReviewLogs fetches a model's review history.
func (s *Models) ReviewLogs(ctx context.Context, id api.ID) ([]api.ReviewLog, error) {
	return s.client.ModelReviewLogs(ctx, id)
}

// UploadImages attaches preview images to a model.
func (s *Models) UploadImages(ctx context.Context, id api.ID, files []api.FormFile) error {
	return s.client.UploadModelImages(ctx, id, files)
}
