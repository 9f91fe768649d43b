// Package session holds the signed-in administrator for every browser.
//
// Two pieces cooperate:
//
//	Store        in-memory records, one per client id (the fast path)
//	AuthContext  the only writer: Login/Logout update the Store and the
//	             durable local storage together, and the first lookup for a
//	             client hydrates the Store from local storage
//
// Nothing here talks to the backend. A token revoked server-side is only
// noticed when a later API call fails.
package session

import (
	"github.com/patrickmn/go-cache"

	"github.com/sakif/portfolio-site/internal/model"
)

// record is what the Store keeps per client. A record with a nil admin
// means "known and signed out", which is different from "never seen".
type record struct {
	admin *model.AdminSession
}

// Store is the process-wide in-memory session table. It is safe for
// concurrent use. Records never expire: a session lasts until Logout.
type Store struct {
	records *cache.Cache
}

// NewStore creates an empty Store.
func NewStore() *Store {
	// No default expiration and no janitor goroutine.
	return &Store{records: cache.New(cache.NoExpiration, 0)}
}

// Get returns the signed-in admin of clientID, if any.
func (s *Store) Get(clientID string) (*model.AdminSession, bool) {
	v, found := s.records.Get(clientID)
	if !found {
		return nil, false
	}
	rec := v.(record)
	if rec.admin == nil {
		return nil, false
	}
	admin := *rec.admin
	return &admin, true
}

// Known reports whether clientID has been hydrated or written before.
func (s *Store) Known(clientID string) bool {
	_, found := s.records.Get(clientID)
	return found
}

func (s *Store) set(clientID string, admin model.AdminSession) {
	s.records.Set(clientID, record{admin: &admin}, cache.NoExpiration)
}

func (s *Store) clear(clientID string) {
	s.records.Set(clientID, record{}, cache.NoExpiration)
}

// hydrate stores the initial record for clientID unless another request
// already did, so a concurrent Login or Logout is never overwritten.
func (s *Store) hydrate(clientID string, admin *model.AdminSession) {
	_ = s.records.Add(clientID, record{admin: admin}, cache.NoExpiration)
}
