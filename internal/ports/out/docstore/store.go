package docstore

import (
	"context"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Store is the remote, authoritative document store. A single Put is treated
// as atomic; no multi-key transactional guarantees are assumed.
//
// Adapters that persist serialized payloads must validate documents on Get
// (domain.CentralItinerary.Validate) so malformed data is rejected at load
// time instead of flowing into pricing.
type Store interface {
	Get(ctx context.Context, id domain.ContextID) (domain.CentralItinerary, error)
	Put(ctx context.Context, id domain.ContextID, doc domain.CentralItinerary) error
}
