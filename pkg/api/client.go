// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package api is the Go client for the Lithoform Print API.
//
// The Print API is the authoritative backend: sessions, carts, model
// listings, materials, and orders all live server-side. This package
// owns the transport concerns (JSON codec, token header, error
// decoding, list-shape normalization) so the state packages above it
// never touch HTTP.
//
// All calls take a context and do one request/response round trip.
// There is no retry layer; retrying is the caller's decision.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lithoform/lithoform/pkg/logging"
)

// DefaultTimeout is the default timeout for Print API requests.
const DefaultTimeout = 30 * time.Second

var tracer = otel.Tracer("lithoform.api")

// validate checks request payloads before they go on the wire.
var validate = validator.New()

// TokenSource supplies the current session credential.
//
// An empty token means "no session"; the request goes out without an
// Authorization header and authenticated endpoints will answer 401.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-credential TokenSource, mainly for tests.
type StaticToken string

// Token returns the fixed credential.
func (t StaticToken) Token() string { return string(t) }

// Client wraps calls to the Print API.
//
// # Thread Safety
//
// Client is safe for concurrent use after construction. SetTokenSource
// must be called before the client is shared.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTokenSource sets the session credential source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger for request-level logging.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Print API client.
//
// Example:
//
//	client := api.New("https://api.lithoform.io",
//	    api.WithTokenSource(sessionStore),
//	)
//	items, err := client.ListCart(ctx)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource wires the credential source after construction.
//
// The session store needs the client to log in, and the client needs
// the session store for the token header; this setter breaks the
// construction cycle.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasSession reports whether a credential is currently available.
func (c *Client) HasSession() bool {
	return c.token() != ""
}

// token returns the current credential, or "" without a source.
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do performs one JSON request/response round trip.
//
// op names the logical operation for spans, metrics, and logs. body
// (if non-nil) is marshaled as JSON; out (if non-nil) receives the
// decoded response body. Failed responses (status >= 400) decode into
// *Error with fallback as the generic message.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	if ctx == nil {
		return ErrInvalidInput
	}

	ctx, span := tracer.Start(ctx, "api."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, span, op, out, "request failed")
}

// FormFile is one file part of a multipart request.
type FormFile struct {
	// Field is the form field name.
	Field string
	// Name is the filename reported to the server.
	Name string
	// Content is the file body.
	Content []byte
}

// doMultipart performs one multipart/form-data round trip.
//
// Used by the avatar and model-upload endpoints, which accept file
// blobs alongside plain fields.
func (c *Client) doMultipart(ctx context.Context, op, method, path string, fields map[string]string, files []FormFile, out any) error {
	if ctx == nil {
		return ErrInvalidInput
	}

	ctx, span := tracer.Start(ctx, "api."+op)
	defer span.End()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range fields {
		if err := mw.WriteField(field, value); err != nil {
			return fmt.Errorf("write form field %s: %w", field, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return fmt.Errorf("create form file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("write form file %s: %w", f.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, span, op, out, "upload failed")
}

// send executes a prepared request and decodes the response.
func (c *Client) send(req *http.Request, span trace.Span, op string, out any, fallback string) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		requestsTotal.WithLabelValues(op, "transport_error").Inc()
		c.log.Warn("api request failed",
			"op", op, "request_id", requestID, "error", err.Error())
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		requestsTotal.WithLabelValues(op, "read_error").Inc()
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("api request completed",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp.StatusCode, respBody, fallback)
		span.SetStatus(codes.Error, apiErr.Message())
		if resp.StatusCode == http.StatusUnauthorized {
			requestsTotal.WithLabelValues(op, "unauthenticated").Inc()
		} else {
			requestsTotal.WithLabelValues(op, "error").Inc()
		}
		return apiErr
	}

	requestsTotal.WithLabelValues(op, "ok").Inc()

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// getList fetches a list endpoint and returns the raw body for
// envelope normalization.
func (c *Client) getList(ctx context.Context, op, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
