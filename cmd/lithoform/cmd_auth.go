// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lithoform/lithoform/pkg/ux"
	"github.com/lithoform/lithoform/pkg/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	loginEmail    string
	loginPassword string // falls back to LITHOFORM_PASSWORD
	loginExternal string // external identity token

	registerEmail    string
	registerPassword string

	profileName string
	avatarKind  string
	avatarImage string // path to a custom avatar image
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

// loginCmd establishes a session. Any guest cart built before login
// merges into the account cart as part of the same step.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and merge any guest cart into your account",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the session on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx.Session.Logout()
		ux.Success("logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Lithoform account",
	RunE:  runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in profile",
	RunE:  runWhoami,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your display name or avatar",
	RunE:  runProfileUpdate,
}

var profileAvatarsCmd = &cobra.Command{
	Use:   "avatars",
	Short: "List the selectable avatar kinds",
	RunE:  runProfileAvatars,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "",
		"Account password (or set LITHOFORM_PASSWORD)")
	loginCmd.Flags().StringVar(&loginExternal, "id-token", "",
		"External identity token (Google sign-in)")

	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "",
		"Account password (or set LITHOFORM_PASSWORD)")
	_ = registerCmd.MarkFlagRequired("email")

	profileCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	profileCmd.Flags().StringVar(&avatarKind, "avatar", "", "Avatar kind (see 'profile avatars')")
	profileCmd.Flags().StringVar(&avatarImage, "avatar-image", "",
		"Path to a custom avatar image (requires --avatar)")

	profileCmd.AddCommand(profileAvatarsCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func passwordOrEnv(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("LITHOFORM_PASSWORD")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if loginExternal != "" {
		if err := ux.WithSpinner("signing in", func() error {
			return appCtx.Session.LoginExternal(ctx, loginExternal)
		}); err != nil {
			return err
		}
	} else {
		password := passwordOrEnv(loginPassword)
		if loginEmail == "" || password == "" {
			return fmt.Errorf("login needs --email and --password (or LITHOFORM_PASSWORD)")
		}
		if err := validation.ValidateEmail(loginEmail); err != nil {
			return err
		}
		if err := ux.WithSpinner("signing in", func() error {
			return appCtx.Session.Login(ctx, loginEmail, password)
		}); err != nil {
			return err
		}
	}

	if profile := appCtx.Session.Profile(); profile != nil {
		ux.Success(fmt.Sprintf("logged in as %s", profile.Email))
	}
	printCart()
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	password := passwordOrEnv(registerPassword)
	if err := validation.ValidateEmail(registerEmail); err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	err := appCtx.Session.Register(cmd.Context(), registerEmail, password, password)
	if err != nil {
		return err
	}
	ux.Success("account created; log in to start ordering")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if !appCtx.Session.Authenticated() {
		ux.Muted("not logged in (guest cart active)")
		return nil
	}

	// Refresh best-effort; a stale cached profile still prints.
	if err := appCtx.Session.FetchProfile(cmd.Context()); err != nil {
		ux.Warning("could not refresh profile: " + err.Error())
	}

	profile := appCtx.Session.Profile()
	if profile == nil {
		ux.Muted("profile not loaded yet")
		return nil
	}
	ux.KeyValue("email", profile.Email)
	ux.KeyValue("name", profile.DisplayName)
	ux.KeyValue("role", profile.Role)
	if profile.IsEmployee {
		ux.KeyValue("employee", "yes")
	}
	return nil
}

func runProfileAvatars(cmd *cobra.Command, args []string) error {
	choices, err := appCtx.Client.AvatarChoices(cmd.Context())
	if err != nil {
		return err
	}
	for _, choice := range choices {
		ux.KeyValue(choice.Kind, choice.Label)
	}
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if profileName == "" && avatarKind == "" {
		return fmt.Errorf("nothing to update: pass --name or --avatar")
	}

	if profileName != "" {
		name, err := validation.SanitizeDisplayName(profileName)
		if err != nil {
			return err
		}
		if err := appCtx.Session.UpdateDisplayName(ctx, name); err != nil {
			return err
		}
		ux.Success("display name updated")
	}

	if avatarKind != "" {
		var image []byte
		if avatarImage != "" {
			data, err := os.ReadFile(avatarImage)
			if err != nil {
				return fmt.Errorf("read avatar image: %w", err)
			}
			image = data
		}
		if err := appCtx.Session.UpdateAvatar(ctx, avatarKind, image); err != nil {
			return err
		}
		ux.Success("avatar updated")
	}
	return nil
}
