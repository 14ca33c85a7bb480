// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"fmt"
	"net/http"
)

// loginRequest is the credential login payload.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// externalLoginRequest is the external-identity login payload.
type externalLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// registrationRequest is the account registration payload.
type registrationRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password1 string `json:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

// profileUpdateRequest is the display-name update payload.
type profileUpdateRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

// Login exchanges credentials for a session key.
//
// Validation failures are reported locally without a round trip;
// server-side rejections come back as *Error with the field-specific
// message resolution described there.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := loginRequest{Email: email, Password: password}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var resp AuthResponse
	if err := c.do(ctx, "auth.login", http.MethodPost, "/api/auth/login/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginExternal exchanges an external identity token for a session key.
func (c *Client) LoginExternal(ctx context.Context, idToken string) (*AuthResponse, error) {
	req := externalLoginRequest{IDToken: idToken}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var resp AuthResponse
	if err := c.do(ctx, "auth.external", http.MethodPost, "/api/auth/google/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
//
// The server does not issue a session key on registration; callers
// follow up with Login.
func (c *Client) Register(ctx context.Context, email, password1, password2 string) error {
	req := registrationRequest{Email: email, Password1: password1, Password2: password2}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return c.do(ctx, "auth.register", http.MethodPost, "/api/auth/registration/", req, nil)
}

// Me fetches the full profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, "auth.me", http.MethodGet, "/api/auth/me/", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes the user's display name.
func (c *Client) UpdateProfile(ctx context.Context, displayName string) (*UserProfile, error) {
	req := profileUpdateRequest{DisplayName: displayName}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var profile UserProfile
	if err := c.do(ctx, "auth.profile", http.MethodPatch, "/api/auth/profile/", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AvatarChoices lists the selectable preset avatars.
func (c *Client) AvatarChoices(ctx context.Context) ([]AvatarChoice, error) {
	raw, err := c.getList(ctx, "auth.avatar_choices", "/api/auth/avatar/choices/")
	if err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope[AvatarChoice](raw)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// UpdateAvatar sets the avatar kind, optionally uploading an image.
//
// image may be nil when kind refers to a preset avatar.
func (c *Client) UpdateAvatar(ctx context.Context, kind string, image []byte) (*UserProfile, error) {
	if kind == "" {
		return nil, fmt.Errorf("%w: avatar kind is empty", ErrInvalidInput)
	}

	fields := map[string]string{"avatar_type": kind}
	var files []FormFile
	if len(image) > 0 {
		files = append(files, FormFile{Field: "avatar_image", Name: "avatar.png", Content: image})
	}

	var profile UserProfile
	if err := c.doMultipart(ctx, "auth.avatar", http.MethodPatch, "/api/auth/avatar/", fields, files, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
