package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/portfolio-site/internal/repository"
)

// compile-time check that *DB implements repository.LocalStorage
var _ repository.LocalStorage = (*DB)(nil)

// GetItem returns the stored value for (clientID, key).
// A missing row is not an error: it reports ok=false, like localStorage
// returning null.
func (db *DB) GetItem(ctx context.Context, clientID, key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE client_id = ? AND key = ?`,
		clientID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite: getting %s for client %s: %w", key, clientID, err)
	}
	return value, true, nil
}

// SetItem inserts or overwrites (clientID, key).
func (db *DB) SetItem(ctx context.Context, clientID, key, value string) error {
	now := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO local_storage (client_id, key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(client_id, key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`, clientID, key, value, now, now)
	if err != nil {
		return fmt.Errorf("sqlite: setting %s for client %s: %w", key, clientID, err)
	}
	return nil
}

// RemoveItem deletes (clientID, key). Removing a missing key succeeds.
func (db *DB) RemoveItem(ctx context.Context, clientID, key string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM local_storage WHERE client_id = ? AND key = ?`,
		clientID, key,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing %s for client %s: %w", key, clientID, err)
	}
	return nil
}

// Keys lists the keys stored for a client, sorted. Used by tests and
// diagnostics.
func (db *DB) Keys(ctx context.Context, clientID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT key FROM local_storage WHERE client_id = ? ORDER BY key`, clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing keys for client %s: %w", clientID, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("sqlite: scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating keys: %w", err)
	}
	return keys, nil
}
