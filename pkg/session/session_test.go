// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/api/apitest"
	"github.com/lithoform/lithoform/pkg/localstore"
)

type fixture struct {
	srv    *apitest.Server
	client *api.Client
	local  *localstore.Store
	store  *Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedUser("maker@example.test", "printall3d")

	local, err := localstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	client := api.New(srv.URL())
	store := New(client, local, nil)
	client.SetTokenSource(store)

	return &fixture{srv: srv, client: client, local: local, store: store}
}

func TestStore_LoginSetsSessionAndProfile(t *testing.T) {
	fix := newFixture(t)
	require.False(t, fix.store.Authenticated())

	require.NoError(t, fix.store.Login(context.Background(), "maker@example.test", "printall3d"))

	assert.True(t, fix.store.Authenticated())
	assert.NotEmpty(t, fix.store.Token())

	profile := fix.store.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "maker@example.test", profile.Email)

	// Both entries are persisted.
	token, ok, err := fix.local.GetString(context.Background(), localstore.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fix.store.Token(), token)

	var stored api.UserProfile
	ok, err = fix.local.GetJSON(context.Background(), localstore.KeyProfile, &stored)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, profile.Email, stored.Email)
}

func TestStore_LoginFailureLeavesStateUntouched(t *testing.T) {
	fix := newFixture(t)

	err := fix.store.Login(context.Background(), "maker@example.test", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Unable to log in with provided credentials.", err.Error())

	assert.False(t, fix.store.Authenticated())
	assert.Nil(t, fix.store.Profile())

	_, ok, storeErr := fix.local.GetString(context.Background(), localstore.KeyToken)
	require.NoError(t, storeErr)
	assert.False(t, ok)
}

func TestStore_LoginExternal(t *testing.T) {
	fix := newFixture(t)
	fix.srv.SeedExternalIdentity("idtok-1", "ext@example.test")

	require.NoError(t, fix.store.LoginExternal(context.Background(), "idtok-1"))
	assert.True(t, fix.store.Authenticated())

	profile := fix.store.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "ext@example.test", profile.Email)
}

func TestStore_LoginHooksRunAfterProfileLoad(t *testing.T) {
	fix := newFixture(t)

	var sawProfile bool
	fix.store.OnLogin(func(ctx context.Context) {
		sawProfile = fix.store.Profile() != nil
	})

	require.NoError(t, fix.store.Login(context.Background(), "maker@example.test", "printall3d"))
	assert.True(t, sawProfile)
}

func TestStore_RegisterThenLogin(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fix.store.Register(ctx, "new@example.test", "printall3d", "printall3d"))

	// Registration alone establishes nothing.
	assert.False(t, fix.store.Authenticated())

	require.NoError(t, fix.store.Login(ctx, "new@example.test", "printall3d"))
	assert.True(t, fix.store.Authenticated())
}

func TestStore_UpdateDisplayName(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fix.store.Login(ctx, "maker@example.test", "printall3d"))

	require.NoError(t, fix.store.UpdateDisplayName(ctx, "The Maker"))
	assert.Equal(t, "The Maker", fix.store.Profile().DisplayName)

	var stored api.UserProfile
	ok, err := fix.local.GetJSON(ctx, localstore.KeyProfile, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "The Maker", stored.DisplayName)
}

func TestStore_UpdateAvatar(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fix.store.Login(ctx, "maker@example.test", "printall3d"))

	require.NoError(t, fix.store.UpdateAvatar(ctx, "maker", nil))
	assert.Equal(t, "maker", fix.store.Profile().AvatarType)
}

func TestStore_LogoutClearsEverything(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fix.store.Login(ctx, "maker@example.test", "printall3d"))

	var hookRan bool
	fix.store.OnLogout(func() { hookRan = true })

	fix.store.Logout()

	assert.False(t, fix.store.Authenticated())
	assert.Empty(t, fix.store.Token())
	assert.Nil(t, fix.store.Profile())
	assert.True(t, hookRan)

	// No session fields remain in durable storage.
	_, ok, err := fix.local.GetString(ctx, localstore.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = fix.local.GetJSON(ctx, localstore.KeyProfile, &api.UserProfile{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RestoresPersistedSession(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fix.store.Login(ctx, "maker@example.test", "printall3d"))
	token := fix.store.Token()

	// A second store over the same local store picks the session up.
	restored := New(fix.client, fix.local, nil)
	assert.Equal(t, token, restored.Token())
	require.NotNil(t, restored.Profile())
	assert.Equal(t, "maker@example.test", restored.Profile().Email)
}

func TestStore_CorruptPersistedProfileIsNotFatal(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fix.local.PutString(ctx, localstore.KeyToken, "persisted-token"))
	require.NoError(t, fix.local.Put(ctx, localstore.KeyProfile, []byte("{broken")))

	restored := New(fix.client, fix.local, nil)
	assert.Equal(t, "persisted-token", restored.Token())
	assert.Nil(t, restored.Profile())
}

func TestStore_MissingPersistedDataMeansSignedOut(t *testing.T) {
	fix := newFixture(t)
	assert.False(t, fix.store.Authenticated())
	assert.Nil(t, fix.store.Profile())
}
