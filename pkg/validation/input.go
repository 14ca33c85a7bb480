// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-provided
// values before they reach the Print API.
//
// The server validates everything again; these checks exist to
// reject obviously bad input without a network round trip and to
// give the CLI specific messages instead of raw API errors.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern is a coarse shape check, not an RFC parser. The
// server's validator has the final word.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// displayNamePattern allows letters, digits, spaces, and a few
// separators.
var displayNamePattern = regexp.MustCompile(`^[\p{L}\p{N} ._\-]+$`)

// ValidateEmail checks that a string is shaped like an email
// address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}

// ValidatePassword enforces the minimum password length. Anything
// stricter belongs to the server.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// ValidateDisplayName checks a profile display name.
//
// Valid names:
//   - 1-50 characters after trimming
//   - Letters, digits, spaces, dots, underscores, hyphens
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("display name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 50 {
		return fmt.Errorf("display name too long: %d characters (max 50)", utf8.RuneCountInString(name))
	}
	if !displayNamePattern.MatchString(name) {
		return fmt.Errorf("display name contains invalid characters: %q", name)
	}
	return nil
}

// ValidateQuantity checks a cart line quantity. The upper bound
// guards against typo orders; bulk purchases go through sales.
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	if quantity > 999 {
		return fmt.Errorf("quantity too large: %d (max 999)", quantity)
	}
	return nil
}

// ValidateShippingAddress checks an order's shipping address.
func ValidateShippingAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("shipping address cannot be empty")
	}
	if utf8.RuneCountInString(address) < 10 {
		return fmt.Errorf("shipping address too short to be deliverable")
	}
	return nil
}

// SanitizeDisplayName trims and validates a display name. Returns
// the trimmed name if valid.
func SanitizeDisplayName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if err := ValidateDisplayName(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}
