package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atlasvoyages/itinerary-api/internal/app/itinerary"
	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Server is the HTTP adapter over the itinerary controllers. One controller
// exists per context id; the registry creates it on first load.
type Server struct {
	Itineraries *itinerary.Registry
}

func NewServer(reg *itinerary.Registry) *Server {
	return &Server{Itineraries: reg}
}

func contextIDParam(r *http.Request) domain.ContextID {
	return domain.ContextID(chi.URLParam(r, "contextID"))
}

// controllerFor resolves a loaded controller or writes the error response.
func (s *Server) controllerFor(w http.ResponseWriter, r *http.Request) (*itinerary.Controller, bool) {
	id := contextIDParam(r)
	c, ok := s.Itineraries.Get(id)
	if !ok {
		writeError(w, r, http.StatusConflict, itinerary.CodeNotReady,
			"itinerary not loaded for context", map[string]any{"contextId": string(id)})
		return nil, false
	}
	return c, true
}

func (s *Server) LoadItinerary(w http.ResponseWriter, r *http.Request) {
	id := contextIDParam(r)
	c := s.Itineraries.GetOrCreate(id)
	if err := c.Load(r.Context()); err != nil {
		writeAppError(w, r, err)
		return
	}
	doc, ok := c.Snapshot()
	if !ok {
		writeError(w, r, http.StatusConflict, itinerary.CodeNotReady, "itinerary not ready after load", nil)
		return
	}
	writeJSON(w, http.StatusOK, toItineraryResponse(doc))
}

func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	doc, ready := c.Snapshot()
	if !ready {
		writeError(w, r, http.StatusConflict, itinerary.CodeNotReady, "itinerary not loaded", nil)
		return
	}
	writeJSON(w, http.StatusOK, toItineraryResponse(doc))
}

func (s *Server) ClearItinerary(w http.ResponseWriter, r *http.Request) {
	s.Itineraries.Clear(contextIDParam(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	if err := c.Mutate(itinerary.AddDayOp(), itinerary.DebounceShort); err != nil {
		writeAppError(w, r, err)
		return
	}
	doc, _ := c.Snapshot()
	writeJSON(w, http.StatusOK, toItineraryResponse(doc))
}

func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	var req dayPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, itinerary.CodeValidation,
			"invalid request body", map[string]any{"body": err.Error()})
		return
	}
	patch, err := toDayPatch(req)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, itinerary.CodeValidation,
			"invalid day patch", map[string]any{"body": err.Error()})
		return
	}
	tier := itinerary.DebounceShort
	if req.LongForm {
		tier = itinerary.DebounceLong
	}
	dayID := domain.DayID(chi.URLParam(r, "dayID"))
	if err := c.Mutate(itinerary.UpdateDayByIDOp(dayID, patch), tier); err != nil {
		writeAppError(w, r, err)
		return
	}
	doc, _ := c.Snapshot()
	writeJSON(w, http.StatusOK, toItineraryResponse(doc))
}

func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, itinerary.CodeValidation,
			"day index must be an integer", map[string]any{"index": chi.URLParam(r, "index")})
		return
	}
	if err := c.Mutate(itinerary.RemoveDayOp(index), itinerary.DebounceShort); err != nil {
		writeAppError(w, r, err)
		return
	}
	doc, _ := c.Snapshot()
	writeJSON(w, http.StatusOK, toItineraryResponse(doc))
}

func (s *Server) GetProposal(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	party, err := partyFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, itinerary.CodeValidation, err.Error(), nil)
		return
	}
	snap, err := c.Proposal(party)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProposalResponse(snap))
}

func (s *Server) SaveNow(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	c.Save()
	writeJSON(w, http.StatusOK, statusResponse{
		State:      string(c.State()),
		SaveStatus: string(c.SaveStatus()),
	})
}

func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		State:      string(c.State()),
		SaveStatus: string(c.SaveStatus()),
	})
}

func partyFromQuery(r *http.Request) (itinerary.PartyComposition, error) {
	party := itinerary.PartyComposition{Adults: 2}
	if v := r.URL.Query().Get("adults"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return itinerary.PartyComposition{}, errInvalidQueryInt("adults", v)
		}
		party.Adults = n
	}
	if v := r.URL.Query().Get("children"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return itinerary.PartyComposition{}, errInvalidQueryInt("children", v)
		}
		party.Children = n
	}
	return party, nil
}

type queryIntError struct{ field, value string }

func (e queryIntError) Error() string {
	return e.field + " must be a non-negative integer, got " + strconv.Quote(e.value)
}

func errInvalidQueryInt(field, value string) error {
	return queryIntError{field: field, value: value}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
