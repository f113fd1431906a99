package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	memclock "github.com/atlasvoyages/itinerary-api/internal/adapters/memory/clock"
	memdocstore "github.com/atlasvoyages/itinerary-api/internal/adapters/memory/docstore"
	memfallbackstore "github.com/atlasvoyages/itinerary-api/internal/adapters/memory/fallbackstore"
	"github.com/atlasvoyages/itinerary-api/internal/app/itinerary"
	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

type apiHarness struct {
	router http.Handler
	clk    *memclock.ManualClock
	remote *memdocstore.Store
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	h := &apiHarness{
		clk:    memclock.NewManualClock(time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)),
		remote: memdocstore.NewStore(),
	}
	fallback := memfallbackstore.NewStore()
	reg := itinerary.NewRegistry(func(id domain.ContextID) *itinerary.Controller {
		c := itinerary.NewController(id, h.remote, fallback, h.clk, h.clk, itinerary.ControllerConfig{
			Markup:   domain.MarkupConfig{Type: domain.MarkupTypePercentage, Percentage: 10},
			Currency: "EUR",
			NewDocument: func(id domain.ContextID, now time.Time) domain.CentralItinerary {
				doc := itinerary.NewDraft(id, domain.ContextTagQuery, "Tuscany Loop", now, "EUR", now)
				doc.Destinations = []domain.Location{{Name: "Florence", Country: "Italy", City: "Florence"}}
				return doc
			},
		})
		n := 0
		c.Editor().SetNewDayIDForTest(func() domain.DayID {
			n++
			return domain.DayID(fmt.Sprintf("day-%d", n))
		})
		return c
	})
	h.router = NewRouter(NewServer(reg))
	return h
}

func (h *apiHarness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decodeAs[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status=%d, want %d; body=%s", rec.Code, want, rec.Body.String())
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeAs[errorResponse](t, rec).Error.Code
}

func TestAPI_Healthz(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	rec := h.do(t, http.MethodGet, "/healthz", nil)
	requireStatus(t, rec, http.StatusOK)
}

func TestAPI_OperationsBeforeLoadConflict(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/itineraries/ctx-9/"},
		{http.MethodPost, "/itineraries/ctx-9/days"},
		{http.MethodGet, "/itineraries/ctx-9/proposal"},
		{http.MethodGet, "/itineraries/ctx-9/status"},
		{http.MethodPost, "/itineraries/ctx-9/save"},
	} {
		rec := h.do(t, tc.method, tc.path, nil)
		requireStatus(t, rec, http.StatusConflict)
		if code := errorCode(t, rec); code != itinerary.CodeNotReady {
			t.Fatalf("%s %s: code=%s", tc.method, tc.path, code)
		}
	}
}

func TestAPI_EditFlow(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)

	rec := h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)
	requireStatus(t, rec, http.StatusOK)
	loaded := decodeAs[itineraryResponse](t, rec)
	if loaded.ContextId != "ctx-1" || loaded.Title != "Tuscany Loop" {
		t.Fatalf("loaded=%+v", loaded)
	}
	if len(loaded.Days) != 0 {
		t.Fatalf("fresh draft has %d days", len(loaded.Days))
	}

	rec = h.do(t, http.MethodPost, "/itineraries/ctx-1/days", nil)
	requireStatus(t, rec, http.StatusOK)
	withDay := decodeAs[itineraryResponse](t, rec)
	if len(withDay.Days) != 1 || withDay.Days[0].Id != "day-1" {
		t.Fatalf("days=%+v", withDay.Days)
	}
	if withDay.Days[0].Location.Name != "Florence" {
		t.Fatalf("first day location=%+v, want the first destination", withDay.Days[0].Location)
	}

	patch := map[string]any{
		"activities": []map[string]any{
			{"name": "Uffizi Gallery", "cost": 100.0},
		},
		"transport": []map[string]any{
			{"mode": "train", "from": "Rome", "to": "Florence", "cost": 50.0},
		},
	}
	rec = h.do(t, http.MethodPatch, "/itineraries/ctx-1/days/day-1", patch)
	requireStatus(t, rec, http.StatusOK)
	patched := decodeAs[itineraryResponse](t, rec)
	if patched.Days[0].TotalCost != 150 {
		t.Fatalf("day totalCost=%v, want 150", patched.Days[0].TotalCost)
	}
	if patched.Pricing.BaseCost != 150 || patched.Pricing.FinalPrice != 165 {
		t.Fatalf("pricing=%+v, want base 150 with 10%% markup", patched.Pricing)
	}

	rec = h.do(t, http.MethodGet, "/itineraries/ctx-1/proposal?adults=2&children=0", nil)
	requireStatus(t, rec, http.StatusOK)
	proposal := decodeAs[proposalResponse](t, rec)
	if proposal.ServiceCosts.Sightseeing != 100 || proposal.ServiceCosts.Transport != 50 {
		t.Fatalf("serviceCosts=%+v", proposal.ServiceCosts)
	}

	// Nothing persisted yet; the debounce window is still open.
	rec = h.do(t, http.MethodGet, "/itineraries/ctx-1/status", nil)
	requireStatus(t, rec, http.StatusOK)
	st := decodeAs[statusResponse](t, rec)
	if st.State != "ready" || st.SaveStatus != "unsaved" {
		t.Fatalf("status=%+v", st)
	}

	rec = h.do(t, http.MethodPost, "/itineraries/ctx-1/save", nil)
	requireStatus(t, rec, http.StatusOK)
	st = decodeAs[statusResponse](t, rec)
	if st.SaveStatus != "saved-remote" {
		t.Fatalf("saveStatus=%s after manual save", st.SaveStatus)
	}
	if _, err := h.remote.Get(context.Background(), "ctx-1"); err != nil {
		t.Fatalf("document not persisted: %v", err)
	}
}

func TestAPI_PatchNullClearsSection(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/days", nil)
	h.do(t, http.MethodPatch, "/itineraries/ctx-1/days/day-1", map[string]any{
		"activities": []map[string]any{{"name": "Duomo", "cost": 30.0}},
	})

	rec := h.do(t, http.MethodPatch, "/itineraries/ctx-1/days/day-1", map[string]any{
		"activities": nil,
	})
	requireStatus(t, rec, http.StatusOK)
	cleared := decodeAs[itineraryResponse](t, rec)
	if len(cleared.Days[0].Activities) != 0 || cleared.Days[0].TotalCost != 0 {
		t.Fatalf("day after null patch=%+v", cleared.Days[0])
	}
}

func TestAPI_PatchUnknownDay(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)

	rec := h.do(t, http.MethodPatch, "/itineraries/ctx-1/days/day-42", map[string]any{
		"activities": []map[string]any{{"name": "Duomo", "cost": 30.0}},
	})
	requireStatus(t, rec, http.StatusNotFound)
	if code := errorCode(t, rec); code != itinerary.CodeDayNotFound {
		t.Fatalf("code=%s", code)
	}
}

func TestAPI_RemoveDay(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/days", nil)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/days", nil)

	rec := h.do(t, http.MethodDelete, "/itineraries/ctx-1/days/0", nil)
	requireStatus(t, rec, http.StatusOK)
	after := decodeAs[itineraryResponse](t, rec)
	if len(after.Days) != 1 || after.Days[0].Id != "day-2" || after.Days[0].Day != 1 {
		t.Fatalf("days after removal=%+v", after.Days)
	}

	rec = h.do(t, http.MethodDelete, "/itineraries/ctx-1/days/5", nil)
	requireStatus(t, rec, http.StatusNotFound)
	if code := errorCode(t, rec); code != itinerary.CodeIndexOutOfRange {
		t.Fatalf("code=%s", code)
	}

	rec = h.do(t, http.MethodDelete, "/itineraries/ctx-1/days/zero", nil)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestAPI_ProposalRejectsBadPartyQuery(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)

	rec := h.do(t, http.MethodGet, "/itineraries/ctx-1/proposal?adults=-1", nil)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
	if code := errorCode(t, rec); code != itinerary.CodeValidation {
		t.Fatalf("code=%s", code)
	}
}

func TestAPI_ClearThenReload(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/days", nil)

	rec := h.do(t, http.MethodDelete, "/itineraries/ctx-1/", nil)
	requireStatus(t, rec, http.StatusNoContent)

	rec = h.do(t, http.MethodGet, "/itineraries/ctx-1/", nil)
	requireStatus(t, rec, http.StatusConflict)

	// The registry dropped the old controller; load builds a fresh one.
	rec = h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)
	requireStatus(t, rec, http.StatusOK)
	reloaded := decodeAs[itineraryResponse](t, rec)
	if len(reloaded.Days) != 0 {
		t.Fatalf("unsaved day survived clear: %+v", reloaded.Days)
	}
}

func TestAPI_DebouncedAutoSave(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(t)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/load", nil)
	h.do(t, http.MethodPost, "/itineraries/ctx-1/days", nil)

	if _, err := h.remote.Get(context.Background(), "ctx-1"); err == nil {
		t.Fatalf("persisted before the debounce window elapsed")
	}
	h.clk.Advance(2 * time.Second)
	doc, err := h.remote.Get(context.Background(), "ctx-1")
	if err != nil {
		t.Fatalf("document not persisted after window: %v", err)
	}
	if len(doc.Days) != 1 {
		t.Fatalf("persisted days=%d", len(doc.Days))
	}
}
