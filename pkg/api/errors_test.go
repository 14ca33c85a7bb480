// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeError_MessagePriority(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		fallback string
		want     string
	}{
		{
			name:   "field error wins over non-field",
			status: http.StatusBadRequest,
			body:   `{"email": ["Enter a valid email address."], "non_field_errors": ["Bad request."]}`,
			want:   "Enter a valid email address.",
		},
		{
			name:   "preferred field order",
			status: http.StatusBadRequest,
			body:   `{"password1": ["Too short."], "email": ["Already taken."]}`,
			want:   "Already taken.",
		},
		{
			name:   "non-field error",
			status: http.StatusBadRequest,
			body:   `{"non_field_errors": ["Unable to log in with provided credentials."]}`,
			want:   "Unable to log in with provided credentials.",
		},
		{
			name:   "detail string",
			status: http.StatusUnauthorized,
			body:   `{"detail": "Invalid token."}`,
			want:   "Invalid token.",
		},
		{
			name:   "error key maps to detail",
			status: http.StatusBadRequest,
			body:   `{"error": "Item already in cart"}`,
			want:   "Item already in cart",
		},
		{
			name:     "fallback for non-JSON body",
			status:   http.StatusBadGateway,
			body:     `<html>gateway error</html>`,
			fallback: "Failed to add item to cart",
			want:     "Failed to add item to cart",
		},
		{
			name:   "status when nothing usable",
			status: http.StatusInternalServerError,
			body:   `{}`,
			want:   "request failed with status 500",
		},
		{
			name:   "unknown field still surfaces",
			status: http.StatusBadRequest,
			body:   `{"shipping_address": ["This field is required."]}`,
			want:   "This field is required.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := decodeError(tt.status, []byte(tt.body), tt.fallback)
			assert.Equal(t, tt.want, apiErr.Message())
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestError_UnwrapUnauthenticated(t *testing.T) {
	unauthorized := decodeError(http.StatusUnauthorized, []byte(`{"detail": "Invalid token."}`), "")
	assert.True(t, errors.Is(unauthorized, ErrUnauthenticated))

	badRequest := decodeError(http.StatusBadRequest, []byte(`{"error": "nope"}`), "")
	assert.False(t, errors.Is(badRequest, ErrUnauthenticated))
}

func TestDecodeError_FieldListShapes(t *testing.T) {
	// Scalar field values are not error lists and must not panic or
	// pollute FieldErrors.
	apiErr := decodeError(http.StatusBadRequest, []byte(`{"count": 3, "email": ["Required."]}`), "")
	require.NotNil(t, apiErr.FieldErrors)
	assert.Equal(t, []string{"Required."}, apiErr.FieldErrors["email"])
	assert.NotContains(t, apiErr.FieldErrors, "count")
}
