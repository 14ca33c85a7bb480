// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package session owns the authentication token and user profile.
//
// The Store is the sole source of truth for "is a remote cart
// available": everything else reads the token through the
// api.TokenSource interface and never mutates it. Session state is
// rewritten to the local store on every change and reloaded at
// process start; corrupt or missing persisted data reads as signed
// out, never as a fatal condition.
package session

import (
	"context"
	"sync"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/localstore"
	"github.com/lithoform/lithoform/pkg/logging"
)

// LoginHook runs after a session is established and the profile is
// loaded. The cart reconciler registers one.
type LoginHook func(ctx context.Context)

// LogoutHook runs after the session is torn down.
type LogoutHook func()

// Store holds the current session.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Hooks run outside the
// store's lock, in registration order.
type Store struct {
	mu     sync.Mutex
	client *api.Client
	local  *localstore.Store
	log    *logging.Logger

	token   string
	profile *api.UserProfile

	onLogin  []LoginHook
	onLogout []LogoutHook
}

// New returns a session store and restores any persisted session.
func New(client *api.Client, local *localstore.Store, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Default()
	}
	s := &Store{client: client, local: local, log: log}
	s.restore()
	return s
}

// restore loads the persisted token and profile. A token without a
// readable profile is still a session; the profile refetches later.
func (s *Store) restore() {
	ctx := context.Background()

	token, ok, err := s.local.GetString(ctx, localstore.KeyToken)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn("session restore failed, starting signed out", "error", err)
		}
		return
	}
	s.token = token

	var profile api.UserProfile
	if ok, err := s.local.GetJSON(ctx, localstore.KeyProfile, &profile); err == nil && ok {
		s.profile = &profile
	}
}

// Token implements api.TokenSource. Empty means signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a session token exists.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Profile returns a copy of the current profile, or nil when signed
// out or not yet fetched.
func (s *Store) Profile() *api.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// OnLogin registers a hook to run after each successful login.
func (s *Store) OnLogin(fn LoginHook) {
	s.mu.Lock()
	s.onLogin = append(s.onLogin, fn)
	s.mu.Unlock()
}

// OnLogout registers a hook to run after each logout.
func (s *Store) OnLogout(fn LogoutHook) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Login establishes a session from credentials.
//
// On success the token and user are set and persisted atomically,
// the full profile is fetched, and the login hooks run. On failure
// nothing changes; the returned error carries the server's most
// specific message.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.establish(ctx, resp)
	return nil
}

// LoginExternal establishes a session from an external identity
// token. Same contract as Login.
func (s *Store) LoginExternal(ctx context.Context, idToken string) error {
	resp, err := s.client.LoginExternal(ctx, idToken)
	if err != nil {
		return err
	}
	s.establish(ctx, resp)
	return nil
}

// Register creates an account. No session is established; the caller
// logs in afterward.
func (s *Store) Register(ctx context.Context, email, password, confirmation string) error {
	return s.client.Register(ctx, email, password, confirmation)
}

// establish commits a successful auth response: state, persistence,
// profile enrichment, hooks.
func (s *Store) establish(ctx context.Context, resp *api.AuthResponse) {
	profile := profileFromAuthUser(resp.User)

	s.mu.Lock()
	s.token = resp.Key
	s.profile = profile
	hooks := make([]LoginHook, len(s.onLogin))
	copy(hooks, s.onLogin)
	s.mu.Unlock()

	s.persist(ctx)

	// The login payload carries an abbreviated user; the profile
	// endpoint has the rest. A failed fetch keeps the abbreviated
	// one.
	if err := s.FetchProfile(ctx); err != nil {
		s.log.Warn("profile fetch after login failed", "error", err)
	}

	for _, fn := range hooks {
		fn(ctx)
	}
}

// persist rewrites the token and profile entries.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	profile := s.profile
	s.mu.Unlock()

	if err := s.local.PutString(ctx, localstore.KeyToken, token); err != nil {
		s.log.Warn("session token persist failed", "error", err)
	}
	if profile != nil {
		if err := s.local.PutJSON(ctx, localstore.KeyProfile, profile); err != nil {
			s.log.Warn("session profile persist failed", "error", err)
		}
	}
}

// FetchProfile refreshes the profile from the server and persists
// it.
func (s *Store) FetchProfile(ctx context.Context) error {
	profile, err := s.client.Me(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	s.persist(ctx)
	return nil
}

// UpdateDisplayName changes the profile display name.
func (s *Store) UpdateDisplayName(ctx context.Context, name string) error {
	profile, err := s.client.UpdateProfile(ctx, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	s.persist(ctx)
	return nil
}

// UpdateAvatar switches the avatar, optionally uploading a custom
// image.
func (s *Store) UpdateAvatar(ctx context.Context, kind string, image []byte) error {
	profile, err := s.client.UpdateAvatar(ctx, kind, image)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	s.persist(ctx)
	return nil
}

// Logout tears the session down locally.
//
// The token and profile are cleared in memory and removed from the
// local store, then the logout hooks run. The server is never
// contacted; its token stays valid until it expires.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	hooks := make([]LogoutHook, len(s.onLogout))
	copy(hooks, s.onLogout)
	s.mu.Unlock()

	ctx := context.Background()
	if err := s.local.Delete(ctx, localstore.KeyToken); err != nil {
		s.log.Warn("session token removal failed", "error", err)
	}
	if err := s.local.Delete(ctx, localstore.KeyProfile); err != nil {
		s.log.Warn("session profile removal failed", "error", err)
	}

	for _, fn := range hooks {
		fn()
	}
}

// profileFromAuthUser builds an interim profile from the abbreviated
// login payload.
func profileFromAuthUser(u *api.AuthUser) *api.UserProfile {
	if u == nil {
		return nil
	}
	return &api.UserProfile{
		ID:          u.UserID(),
		Email:       u.Email,
		DisplayName: u.FirstName,
		AvatarType:  u.AvatarType,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
		IsEmployee:  u.IsEmployee,
		IsAdmin:     u.IsAdmin,
	}
}
