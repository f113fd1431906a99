package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlasvoyages/itinerary-api/internal/adapters/postgres"
)

// OpenMigratedPool connects to the database named by TEST_DATABASE_URL and
// ensures the schema exists. Tests that need Postgres are skipped when the
// variable is unset so the default `go test ./...` run stays hermetic.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS itinerary_documents (
		    context_id TEXT PRIMARY KEY,
		    document   JSONB NOT NULL,
		    updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("migrate itinerary_documents: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE itinerary_documents`); err != nil {
		t.Fatalf("truncate itinerary_documents: %v", err)
	}
	return pool
}
