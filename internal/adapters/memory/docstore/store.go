package docstore

import (
	"context"
	"sync"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
	"github.com/atlasvoyages/itinerary-api/internal/ports/out/docstore"
)

// Store is an in-memory implementation of docstore.Store.
// It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	byID map[domain.ContextID]domain.CentralItinerary
}

func NewStore() *Store {
	return &Store{
		byID: make(map[domain.ContextID]domain.CentralItinerary),
	}
}

func (s *Store) Get(ctx context.Context, id domain.ContextID) (domain.CentralItinerary, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.byID[id]
	if !ok {
		return domain.CentralItinerary{}, docstore.ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *Store) Put(ctx context.Context, id domain.ContextID, doc domain.CentralItinerary) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = doc.Clone()
	return nil
}
