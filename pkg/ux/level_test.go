// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"full", LevelFull},
		{"f", LevelFull},
		{"minimal", LevelMinimal},
		{"min", LevelMinimal},
		{"m", LevelMinimal},
		{"machine", LevelMachine},
		{"plain", LevelMachine},
		{"MACHINE", LevelMachine},
		{"", LevelFull},
		{"bogus", LevelFull},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestSetGetLevel(t *testing.T) {
	prev := GetLevel()
	defer SetLevel(prev)

	SetLevel(LevelMachine)
	assert.Equal(t, LevelMachine, GetLevel())
	assert.False(t, ShouldShowProgress())
	assert.False(t, IsInteractive())

	SetLevel(LevelFull)
	assert.True(t, ShouldShowProgress())
}

func TestInit_HonorsEnvironment(t *testing.T) {
	prev := GetLevel()
	defer SetLevel(prev)

	t.Setenv("LITHOFORM_OUTPUT", "minimal")
	Init()
	assert.Equal(t, LevelMinimal, GetLevel())
}
