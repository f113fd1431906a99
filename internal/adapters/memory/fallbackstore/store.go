package fallbackstore

import (
	"sync"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Store is the in-process fallback cache. It plays the role the source
// system gave browser localStorage: synchronous, keyed by context id, and
// with no failure mode.
type Store struct {
	mu    sync.RWMutex
	byKey map[domain.ContextID]domain.CentralItinerary
}

func NewStore() *Store {
	return &Store{
		byKey: make(map[domain.ContextID]domain.CentralItinerary),
	}
}

func (s *Store) Get(key domain.ContextID) (domain.CentralItinerary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.byKey[key]
	if !ok {
		return domain.CentralItinerary{}, false
	}
	return doc.Clone(), true
}

func (s *Store) Put(key domain.ContextID, doc domain.CentralItinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[key] = doc.Clone()
}

func (s *Store) Delete(key domain.ContextID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byKey, key)
}
