package theme

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	items  map[string]string
	getErr error
	setErr error
}

func (m *memStorage) GetItem(_ context.Context, clientID, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.items[clientID+"/"+key]
	return v, ok, nil
}

func (m *memStorage) SetItem(_ context.Context, clientID, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.items[clientID+"/"+key] = value
	return nil
}

func (m *memStorage) RemoveItem(_ context.Context, clientID, key string) error {
	delete(m.items, clientID+"/"+key)
	return nil
}

func newController(storage *memStorage, fallback Theme) *Controller {
	return NewController(storage, fallback, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCurrent_DefaultsWhenUnset(t *testing.T) {
	c := newController(&memStorage{items: map[string]string{}}, Light)
	assert.Equal(t, Light, c.Current(context.Background(), "c"))

	c = newController(&memStorage{items: map[string]string{}}, Dark)
	assert.Equal(t, Dark, c.Current(context.Background(), "c"))
}

func TestNewController_UnknownFallbackIsLight(t *testing.T) {
	c := newController(&memStorage{items: map[string]string{}}, Theme("sepia"))
	assert.Equal(t, Light, c.Current(context.Background(), "c"))
}

func TestToggle_PersistsAndFlips(t *testing.T) {
	storage := &memStorage{items: map[string]string{}}
	c := newController(storage, Light)
	ctx := context.Background()

	next, err := c.Toggle(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, Dark, next)
	assert.Equal(t, "dark", storage.items["c/theme"])
	assert.Equal(t, Dark, c.Current(ctx, "c"))

	next, err = c.Toggle(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, Light, next)
}

func TestCurrent_IgnoresGarbage(t *testing.T) {
	storage := &memStorage{items: map[string]string{"c/theme": "purple"}}
	c := newController(storage, Dark)
	assert.Equal(t, Dark, c.Current(context.Background(), "c"))
}

func TestCurrent_StorageErrorFallsBack(t *testing.T) {
	storage := &memStorage{items: map[string]string{}, getErr: errors.New("locked")}
	c := newController(storage, Light)
	assert.Equal(t, Light, c.Current(context.Background(), "c"))
}

func TestToggle_StorageError(t *testing.T) {
	storage := &memStorage{items: map[string]string{}, setErr: errors.New("read-only")}
	c := newController(storage, Light)

	_, err := c.Toggle(context.Background(), "c")
	assert.Error(t, err)
}

func TestAssetsFor(t *testing.T) {
	light := AssetsFor(Light)
	dark := AssetsFor(Dark)

	assert.Empty(t, light.RootClass)
	assert.Equal(t, "dark", dark.RootClass)
	assert.Contains(t, light.ToggleIcon, "moon")
	assert.Contains(t, dark.ToggleIcon, "sun")
	assert.NotEqual(t, light.GitHub, dark.GitHub)
}
