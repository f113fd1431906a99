package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
	"github.com/atlasvoyages/itinerary-api/internal/ports/out/docstore"
)

// Store is a Postgres implementation of docstore.Store. Documents are kept
// whole as JSONB rows keyed by context id; a single upsert is the atomic unit
// the core expects from Put.
//
// Schema:
//
//	CREATE TABLE itinerary_documents (
//	    context_id TEXT PRIMARY KEY,
//	    document   JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, id domain.ContextID) (domain.CentralItinerary, error) {
	if s.pool == nil {
		return domain.CentralItinerary{}, errors.New("nil postgres pool")
	}
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT document FROM itinerary_documents WHERE context_id = $1
	`, string(id)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CentralItinerary{}, docstore.ErrNotFound
	}
	if err != nil {
		return domain.CentralItinerary{}, fmt.Errorf("query itinerary document: %w", err)
	}

	var doc domain.CentralItinerary
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.CentralItinerary{}, fmt.Errorf("decode itinerary document %q: %w", id, err)
	}
	// Malformed documents are rejected at load time, not propagated into
	// pricing math.
	if err := doc.Validate(); err != nil {
		return domain.CentralItinerary{}, fmt.Errorf("invalid itinerary document %q: %w", id, err)
	}
	return doc, nil
}

func (s *Store) Put(ctx context.Context, id domain.ContextID, doc domain.CentralItinerary) error {
	if s.pool == nil {
		return errors.New("nil postgres pool")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode itinerary document %q: %w", id, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO itinerary_documents (context_id, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (context_id) DO UPDATE
		SET document = EXCLUDED.document,
		    updated_at = EXCLUDED.updated_at
	`, string(id), raw, doc.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert itinerary document %q: %w", id, err)
	}
	return nil
}
