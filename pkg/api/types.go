// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ID is a server-assigned identifier.
//
// The API is inconsistent about identifier types: numeric primary keys
// for users and cart rows, UUID strings for models. ID absorbs both
// and compares as an opaque string everywhere above the wire.
type ID string

// UnmarshalJSON accepts JSON strings, numbers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*id = ID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*id = ID(num.String())
	return nil
}

// MarshalJSON emits the identifier as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is absent.
func (id ID) IsZero() bool { return id == "" }

// Price is a non-negative monetary amount.
//
// The API serializes decimal fields as JSON strings ("12.50"), plain
// numbers, or null depending on the endpoint. Price absorbs all three
// and never decodes to a negative or unparseable value; missing or
// malformed price data reads as zero.
type Price float64

// UnmarshalJSON accepts JSON strings, numbers, and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*p = 0
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*p = 0
			return nil
		}
		*p = clampPrice(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*p = 0
		return nil
	}
	*p = clampPrice(v)
	return nil
}

// Float64 returns the amount as a float64.
func (p Price) Float64() float64 { return float64(p) }

func clampPrice(v float64) Price {
	if v < 0 {
		return 0
	}
	return Price(v)
}

// AuthUser is the abbreviated user record returned by the auth
// endpoints alongside the session key.
type AuthUser struct {
	PK           ID     `json:"pk"`
	ID           ID     `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	Role         string `json:"role"`
	IsEmployee   bool   `json:"is_employee"`
	IsAdmin      bool   `json:"is_admin"`
	AuthProvider string `json:"auth_provider"`
	AvatarType   string `json:"avatar_type"`
	AvatarURL    string `json:"avatar_url"`
}

// UserID returns whichever identifier field the server populated.
func (u *AuthUser) UserID() ID {
	if !u.PK.IsZero() {
		return u.PK
	}
	return u.ID
}

// AuthResponse is the successful payload of the credential and
// external-identity login endpoints.
type AuthResponse struct {
	Key  string    `json:"key"`
	User *AuthUser `json:"user"`
}

// UserProfile is the full profile from the /auth/me/ endpoint.
type UserProfile struct {
	ID          ID     `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarType  string `json:"avatar_type"`
	AvatarURL   string `json:"avatar_url"`
	Role        string `json:"role"`
	IsEmployee  bool   `json:"is_employee"`
	IsAdmin     bool   `json:"is_admin"`
}

// AvatarChoice is one selectable preset avatar.
type AvatarChoice struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// CartItem is one server-side cart row.
type CartItem struct {
	ID             ID     `json:"id"`
	Model          ID     `json:"model"`
	ModelName      string `json:"model_name"`
	Material       ID     `json:"material"`
	MaterialName   string `json:"material_name"`
	Quantity       int    `json:"quantity"`
	EstimatedPrice Price  `json:"estimated_price"`
	MaterialPrice  Price  `json:"material_price"`
	Notes          string `json:"notes"`
}

// Material is one printable material.
type Material struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PricePerGram Price  `json:"price_twd_g"`
	IsActive     bool   `json:"is_active"`
}

// Model is one 3D model listing.
type Model struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Price     `json:"price"`
	Status      string    `json:"status"`
	IsFeatured  bool      `json:"is_featured"`
	IsPublic    bool      `json:"is_public"`
	Image       string    `json:"image"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReviewLog is one entry in a model's review history.
type ReviewLog struct {
	ID        ID        `json:"id"`
	Status    string    `json:"status"`
	Comment   string    `json:"comment"`
	Reviewer  string    `json:"reviewer"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID           ID     `json:"id"`
	ModelName    string `json:"model_name"`
	MaterialName string `json:"material_name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    Price  `json:"unit_price"`
}

// Order is one placed order.
type Order struct {
	ID              ID          `json:"id"`
	Status          string      `json:"status"`
	TotalPrice      Price       `json:"total_price"`
	ShippingAddress string      `json:"shipping_address"`
	Notes           string      `json:"notes"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Order statuses reported by the server.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusPrinting  = "PRINTING"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)
