// Package repository declares the storage interfaces the rest of the site
// depends on. Implementations live in sub-packages (sqlite).
package repository

import "context"

// Well-known local storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyTheme = "theme"
)

// LocalStorage is the durable per-browser key-value store. Every browser is
// identified by a client id; keys of different clients never mix.
type LocalStorage interface {
	// GetItem returns the value and whether the key exists.
	GetItem(ctx context.Context, clientID, key string) (string, bool, error)
	SetItem(ctx context.Context, clientID, key, value string) error
	// RemoveItem is a no-op for a missing key.
	RemoveItem(ctx context.Context, clientID, key string) error
}
