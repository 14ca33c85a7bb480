// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EnvelopeKind tags the two list shapes the Print API responds with.
type EnvelopeKind int

const (
	// KindList is a plain JSON array of items.
	KindList EnvelopeKind = iota

	// KindPage is a paginated object with results and cursors.
	KindPage
)

// String returns the human-readable name of the kind.
func (k EnvelopeKind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindPage:
		return "page"
	default:
		return "unknown"
	}
}

// Envelope is the normalized form of a list response.
//
// List endpoints answer either with a bare array or with a paginated
// object ({results, count, next, previous}) depending on server-side
// configuration. Envelope is the tagged union both shapes normalize
// into, exactly once, at the API boundary; everything above works
// with Items and never re-inspects the wire shape.
type Envelope[T any] struct {
	// Kind reports which wire shape the server used.
	Kind EnvelopeKind

	// Items holds the decoded elements, in server order.
	Items []T

	// Count is the total element count across all pages.
	// For KindList it equals len(Items).
	Count int

	// Next and Previous are the page cursors.
	// Empty for KindList.
	Next     string
	Previous string
}

// pageEnvelope matches the paginated wire shape.
type pageEnvelope[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// DecodeEnvelope normalizes a list response body into an Envelope.
//
// A body starting with '[' decodes as a plain list; anything else is
// treated as the paginated object shape.
func DecodeEnvelope[T any](data []byte) (Envelope[T], error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Envelope[T]{}, fmt.Errorf("decode list response: %w", err)
		}
		return Envelope[T]{
			Kind:  KindList,
			Items: items,
			Count: len(items),
		}, nil
	}

	var page pageEnvelope[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return Envelope[T]{}, fmt.Errorf("decode paginated response: %w", err)
	}
	env := Envelope[T]{
		Kind:  KindPage,
		Items: page.Results,
		Count: page.Count,
	}
	if page.Next != nil {
		env.Next = *page.Next
	}
	if page.Previous != nil {
		env.Previous = *page.Previous
	}
	return env, nil
}
