package fallbackstore

import "github.com/atlasvoyages/itinerary-api/internal/domain"

// Store is the local fallback cache the auto-save scheduler writes to when
// the remote store fails. It is synchronous and always available; there is
// no failure mode to report. It is a cache, not a source of truth: a remote
// value always wins over a fallback entry on load.
type Store interface {
	Get(key domain.ContextID) (domain.CentralItinerary, bool)
	Put(key domain.ContextID, doc domain.CentralItinerary)
	Delete(key domain.ContextID)
}
