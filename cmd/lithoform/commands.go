// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lithoform/lithoform/cmd/lithoform/config"
	"github.com/lithoform/lithoform/pkg/app"
	"github.com/lithoform/lithoform/pkg/logging"
	"github.com/lithoform/lithoform/pkg/ux"
)

// --- Global Command Variables ---
var (
	configPath  string // --config override
	apiBaseURL  string // --api override
	outputLevel string // --output override (full/minimal/machine)

	// appCtx is built once per invocation in PersistentPreRunE and
	// torn down in PersistentPostRunE.
	appCtx *app.Context

	rootCmd = &cobra.Command{
		Use:   "lithoform",
		Short: "Order 3D-printed models from the Lithoform catalog",
		Long: `Lithoform is the command-line storefront for the Lithoform print service:
browse models and materials, build a cart as a guest or signed in,
and place and track print orders.

Guest carts live on this machine and merge into your account cart
the next time you log in.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupApp,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx != nil {
				return appCtx.Close()
			}
			return nil
		},
	}
)

// setupApp loads configuration and assembles the application
// context.
func setupApp(cmd *cobra.Command, args []string) error {
	if outputLevel != "" {
		ux.SetLevel(ux.ParseLevel(outputLevel))
	} else {
		ux.Init()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if outputLevel == "" && cfg.Output.Level != "" {
		ux.SetLevel(ux.ParseLevel(cfg.Output.Level))
	}
	if apiBaseURL != "" {
		cfg.API.BaseURL = apiBaseURL
	}

	log := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "lithoform",
		Quiet:   true, // the CLI owns stdout; logs go to the file
	})

	appCtx, err = app.New(app.Config{
		APIBaseURL: cfg.API.BaseURL,
		DataDir:    cfg.Data.Dir,
		Timeout:    time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default ~/.lithoform/lithoform.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "",
		"Print API base URL (overrides the config file)")
	rootCmd.PersistentFlags().StringVarP(&outputLevel, "output", "o", "",
		"Output level: full, minimal, or machine")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(materialsCmd)
	rootCmd.AddCommand(ordersCmd)
}
