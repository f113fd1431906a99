package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: handlers decode/validate requests and
// delegate to the itinerary controllers; routing and middleware live here.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoint for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/itineraries/{contextID}", func(r chi.Router) {
		r.Post("/load", s.LoadItinerary)
		r.Get("/", s.GetItinerary)
		r.Delete("/", s.ClearItinerary)

		r.Post("/days", s.AddDay)
		r.Patch("/days/{dayID}", s.UpdateDay)
		r.Delete("/days/{index}", s.RemoveDay)

		r.Get("/proposal", s.GetProposal)
		r.Post("/save", s.SaveNow)
		r.Get("/status", s.GetStatus)
	})

	return r
}
