// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
)

// Config is the on-disk CLI configuration.
type Config struct {
	// API points the CLI at a Print API deployment.
	API APIConfig `yaml:"api"`

	// Data controls where session and guest-cart state persist.
	Data DataConfig `yaml:"data"`

	// Logging controls the structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// Output selects the terminal output level.
	Output OutputConfig `yaml:"output"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`        // e.g. https://api.lithoform.io
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-request bound
}

type DataConfig struct {
	// Dir holds the embedded local store. Empty falls back to
	// ~/.lithoform/data.
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // log file directory
}

type OutputConfig struct {
	// Level is full, minimal, or machine. Empty auto-detects from
	// the terminal.
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() Config {
	dataDir := "data"
	logDir := "logs"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".lithoform", "data")
		logDir = filepath.Join(home, ".lithoform", "logs")
	}
	return Config{
		API: APIConfig{
			BaseURL:        "https://api.lithoform.io",
			TimeoutSeconds: 30,
		},
		Data: DataConfig{Dir: dataDir},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   logDir,
		},
		Output: OutputConfig{},
	}
}
