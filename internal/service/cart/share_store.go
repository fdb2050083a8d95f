package cart

import (
	"time"

	"storefront/internal/domain"

	"github.com/medatechnology/goutil/medattlmap"
)

// ShareStore keeps shared cart snapshots in process memory. Entries are
// evicted after the TTL and are lost on restart; links only resolve on the
// instance that issued them.
type ShareStore struct {
	entries *medattlmap.TTLMap
}

func NewShareStore(ttl time.Duration) *ShareStore {
	sweep := ttl / 24
	if sweep < time.Minute {
		sweep = time.Minute
	}
	return &ShareStore{entries: medattlmap.NewTTLMap(ttl, sweep)}
}

// Put stores a copy of cart under token. It reports false if the token is taken.
func (s *ShareStore) Put(token string, cart domain.Cart) bool {
	if _, exists := s.entries.Get(token); exists {
		return false
	}
	s.entries.Put(token, 0, cart.Clone())
	return true
}

// Get returns a copy of the snapshot stored under token.
func (s *ShareStore) Get(token string) (domain.Cart, bool) {
	val, ok := s.entries.Get(token)
	if !ok {
		return nil, false
	}
	snapshot, ok := val.(domain.Cart)
	if !ok {
		return nil, false
	}
	return snapshot.Clone(), true
}

func (s *ShareStore) Len() int {
	return s.entries.Len()
}
