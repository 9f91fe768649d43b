package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-site/internal/model"
	"github.com/sakif/portfolio-site/internal/repository"
)

// fakeStorage is an in-memory repository.LocalStorage.
type fakeStorage struct {
	mu     sync.Mutex
	items  map[string]map[string]string
	getErr error
	setErr error
	reads  int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: make(map[string]map[string]string)}
}

func (f *fakeStorage) GetItem(_ context.Context, clientID, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.items[clientID][key]
	return v, ok, nil
}

func (f *fakeStorage) SetItem(_ context.Context, clientID, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	if f.items[clientID] == nil {
		f.items[clientID] = make(map[string]string)
	}
	f.items[clientID][key] = value
	return nil
}

func (f *fakeStorage) RemoveItem(_ context.Context, clientID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[clientID], key)
	return nil
}

func (f *fakeStorage) has(clientID, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[clientID][key]
	return ok
}

func newTestAuthContext(storage repository.LocalStorage) *AuthContext {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthContext(NewStore(), storage, logger)
}

var admin = model.AdminSession{ID: 1, Username: "admin", Token: "tok-123"}

func TestLogin_PersistsTokenAndUser(t *testing.T) {
	storage := newFakeStorage()
	ac := newTestAuthContext(storage)
	ctx := context.Background()

	require.NoError(t, ac.Login(ctx, "client-a", admin))

	token, ok, _ := storage.GetItem(ctx, "client-a", repository.KeyToken)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	user, ok, _ := storage.GetItem(ctx, "client-a", repository.KeyUser)
	require.True(t, ok)
	var stored model.AdminSession
	require.NoError(t, json.Unmarshal([]byte(user), &stored))
	assert.Equal(t, admin, stored)

	current, ok := ac.Current(ctx, "client-a")
	require.True(t, ok)
	assert.Equal(t, admin, *current, "in-memory record matches persisted copy")
}

func TestLoginThenLogout_RemovesEverything(t *testing.T) {
	storage := newFakeStorage()
	ac := newTestAuthContext(storage)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, ac.Login(ctx, "client-a", admin))
		assert.True(t, storage.has("client-a", repository.KeyToken))
		assert.True(t, storage.has("client-a", repository.KeyUser))

		require.NoError(t, ac.Logout(ctx, "client-a"))
		assert.False(t, storage.has("client-a", repository.KeyToken))
		assert.False(t, storage.has("client-a", repository.KeyUser))

		_, ok := ac.Current(ctx, "client-a")
		assert.False(t, ok)
	}
}

func TestCurrent_HydratesOnceFromStorage(t *testing.T) {
	storage := newFakeStorage()
	ctx := context.Background()
	user, _ := json.Marshal(admin)
	_ = storage.SetItem(ctx, "client-a", repository.KeyToken, admin.Token)
	_ = storage.SetItem(ctx, "client-a", repository.KeyUser, string(user))

	// A fresh process: new Store, same storage.
	ac := newTestAuthContext(storage)

	current, ok := ac.Current(ctx, "client-a")
	require.True(t, ok)
	assert.Equal(t, "admin", current.Username)

	readsAfterFirst := storage.reads
	_, _ = ac.Current(ctx, "client-a")
	assert.Equal(t, readsAfterFirst, storage.reads, "second lookup is served from memory")
}

func TestCurrent_RequiresBothKeys(t *testing.T) {
	tests := []struct {
		name  string
		token string
		user  string
	}{
		{name: "token only", token: "tok"},
		{name: "user only", user: `{"id":1,"username":"admin","token":"tok"}`},
		{name: "unreadable user", token: "tok", user: "{not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newFakeStorage()
			ctx := context.Background()
			if tt.token != "" {
				_ = storage.SetItem(ctx, "c", repository.KeyToken, tt.token)
			}
			if tt.user != "" {
				_ = storage.SetItem(ctx, "c", repository.KeyUser, tt.user)
			}

			ac := newTestAuthContext(storage)
			_, ok := ac.Current(ctx, "c")
			assert.False(t, ok)
		})
	}
}

func TestCurrent_StorageErrorRetriesLater(t *testing.T) {
	storage := newFakeStorage()
	ctx := context.Background()
	user, _ := json.Marshal(admin)
	_ = storage.SetItem(ctx, "c", repository.KeyToken, admin.Token)
	_ = storage.SetItem(ctx, "c", repository.KeyUser, string(user))

	ac := newTestAuthContext(storage)

	storage.getErr = errors.New("disk I/O error")
	_, ok := ac.Current(ctx, "c")
	assert.False(t, ok)

	storage.getErr = nil
	_, ok = ac.Current(ctx, "c")
	assert.True(t, ok, "hydration is retried after a storage failure")
}

func TestLogin_StorageFailureKeepsSignedOut(t *testing.T) {
	storage := newFakeStorage()
	storage.setErr = errors.New("read-only database")
	ac := newTestAuthContext(storage)
	ctx := context.Background()

	err := ac.Login(ctx, "c", admin)
	require.Error(t, err)

	_, ok := ac.Current(ctx, "c")
	assert.False(t, ok)
}

func TestClientsDoNotShareSessions(t *testing.T) {
	ac := newTestAuthContext(newFakeStorage())
	ctx := context.Background()

	require.NoError(t, ac.Login(ctx, "client-a", admin))

	_, ok := ac.Current(ctx, "client-b")
	assert.False(t, ok)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.set("c", admin)

	got, ok := s.Get("c")
	require.True(t, ok)
	got.Username = "mutated"

	again, _ := s.Get("c")
	assert.Equal(t, "admin", again.Username)
}
