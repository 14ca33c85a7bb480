// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Sentinel errors for the api package.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates the server rejected the session
	// credential. Callers treat this as "fall back to guest/local
	// behavior", never as a generic failure.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// preferredFields is the order in which field-specific errors are
// surfaced when the server reports several. Mirrors the auth form
// layout so the user sees the most actionable message first.
var preferredFields = []string{
	"email", "password", "password1", "password2",
	"display_name", "quantity", "model", "material",
}

// Error is a decoded failure payload from the Print API.
//
// The API reports failures in a handful of shapes: per-field error
// lists, a non_field_errors list, or a single detail/error string.
// Error normalizes all of them and exposes one human-readable message
// via Message().
type Error struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int

	// FieldErrors maps field names to their error messages.
	FieldErrors map[string][]string

	// NonFieldErrors holds errors not tied to a single field.
	NonFieldErrors []string

	// Detail is the server's detail/error string, if any.
	Detail string

	// Fallback is the generic message used when the payload carries
	// nothing usable.
	Fallback string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message()
}

// Unwrap maps authorization failures onto ErrUnauthenticated so that
// callers can test with errors.Is.
func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return nil
}

// Message returns the single human-readable message for this failure.
//
// Resolution order: field-specific message, then non-field message,
// then the detail string, then the generic fallback. Field order is
// deterministic: known form fields first, remaining fields sorted.
func (e *Error) Message() string {
	for _, field := range preferredFields {
		if msgs := e.FieldErrors[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	var rest []string
	for field := range e.FieldErrors {
		rest = append(rest, field)
	}
	sort.Strings(rest)
	for _, field := range rest {
		if msgs := e.FieldErrors[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	if len(e.NonFieldErrors) > 0 {
		return e.NonFieldErrors[0]
	}
	if e.Detail != "" {
		return e.Detail
	}
	if e.Fallback != "" {
		return e.Fallback
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// errorPayload matches the wire shapes the API uses for failures.
type errorPayload struct {
	NonFieldErrors []string `json:"non_field_errors"`
	Detail         string   `json:"detail"`
	Err            string   `json:"error"`
}

// decodeError builds an *Error from a failed response body.
//
// The body is decoded twice: once for the well-known keys and once as
// a generic field->messages map. Both decodes are best-effort; a body
// that is not JSON at all still yields a usable Error.
func decodeError(status int, body []byte, fallback string) *Error {
	apiErr := &Error{
		StatusCode: status,
		Fallback:   fallback,
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.NonFieldErrors = payload.NonFieldErrors
		apiErr.Detail = payload.Detail
		if apiErr.Detail == "" {
			apiErr.Detail = payload.Err
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for field, raw := range fields {
			switch field {
			case "non_field_errors", "detail", "error":
				continue
			}
			var msgs []string
			if err := json.Unmarshal(raw, &msgs); err == nil && len(msgs) > 0 {
				if apiErr.FieldErrors == nil {
					apiErr.FieldErrors = make(map[string][]string)
				}
				apiErr.FieldErrors[field] = msgs
			}
		}
	}

	return apiErr
}
