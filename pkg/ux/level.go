// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Level defines the verbosity and richness of CLI output.
type Level string

const (
	// LevelFull enables all colors, icons, and boxes.
	LevelFull Level = "full"

	// LevelMinimal uses icons and basic formatting only.
	LevelMinimal Level = "minimal"

	// LevelMachine outputs plain text suitable for scripting.
	LevelMachine Level = "machine"
)

var (
	currentLevel = LevelFull
	levelMu      sync.RWMutex
)

// GetLevel returns the current output level.
func GetLevel() Level {
	levelMu.RLock()
	defer levelMu.RUnlock()
	return currentLevel
}

// SetLevel updates the output level.
func SetLevel(level Level) {
	levelMu.Lock()
	defer levelMu.Unlock()
	currentLevel = level
}

// ParseLevel converts a string to a Level. Unknown strings read as
// LevelFull.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "full", "f":
		return LevelFull
	case "minimal", "min", "m":
		return LevelMinimal
	case "machine", "plain", "q":
		return LevelMachine
	default:
		return LevelFull
	}
}

// Init picks the output level from the environment: the
// LITHOFORM_OUTPUT variable wins, otherwise a non-terminal stdout
// gets machine output.
func Init() {
	if env := os.Getenv("LITHOFORM_OUTPUT"); env != "" {
		SetLevel(ParseLevel(env))
		return
	}
	if !isTerminal() {
		SetLevel(LevelMachine)
		return
	}
	SetLevel(LevelFull)
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether prompts should be shown.
func IsInteractive() bool {
	return GetLevel() != LevelMachine && isTerminal()
}

// ShouldShowProgress reports whether spinners and progress belong in
// the output.
func ShouldShowProgress() bool {
	return GetLevel() != LevelMachine
}
