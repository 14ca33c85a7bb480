// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"maker@example.test",
		"first.last@sub.domain.io",
		"  padded@example.test  ",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.test",
		"@example.test",
		"user@nodot",
		"spaces in@example.test",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("printall3d"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(""))
}

func TestValidateDisplayName(t *testing.T) {
	valid := []string{"The Maker", "maker_42", "A.Name-Here", "打印者"}
	for _, name := range valid {
		assert.NoError(t, ValidateDisplayName(name), name)
	}

	invalid := []string{"", "   ", "name<script>", "a@b", string(make([]rune, 51))}
	for _, name := range invalid {
		assert.Error(t, ValidateDisplayName(name), name)
	}
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(1))
	assert.NoError(t, ValidateQuantity(999))
	assert.Error(t, ValidateQuantity(0))
	assert.Error(t, ValidateQuantity(-3))
	assert.Error(t, ValidateQuantity(1000))
}

func TestValidateShippingAddress(t *testing.T) {
	assert.NoError(t, ValidateShippingAddress("1 Print Street, Layer City"))
	assert.Error(t, ValidateShippingAddress(""))
	assert.Error(t, ValidateShippingAddress("short"))
}

func TestSanitizeDisplayName(t *testing.T) {
	name, err := SanitizeDisplayName("  The Maker  ")
	require.NoError(t, err)
	assert.Equal(t, "The Maker", name)

	_, err = SanitizeDisplayName("  ")
	assert.Error(t, err)
}
