package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
	clockport "github.com/atlasvoyages/itinerary-api/internal/ports/out/clock"
	"github.com/atlasvoyages/itinerary-api/internal/ports/out/docstore"
	"github.com/atlasvoyages/itinerary-api/internal/ports/out/fallbackstore"
)

// SaveStatus is the scheduler's persistence outcome surfaced to the host UI.
type SaveStatus string

const (
	SaveStatusUnsaved            SaveStatus = "unsaved"
	SaveStatusSaving             SaveStatus = "saving"
	SaveStatusSavedRemote        SaveStatus = "saved-remote"
	SaveStatusSavedLocalFallback SaveStatus = "saved-local-fallback"
)

// DebounceTier selects the debounce window for an edit. Discrete field edits
// use the short window; free-text/long-form edits use the long one.
type DebounceTier int

const (
	DebounceShort DebounceTier = iota
	DebounceLong
)

const (
	defaultShortWindow = 2 * time.Second
	defaultLongWindow  = 10 * time.Second
)

type SchedulerConfig struct {
	ShortWindow time.Duration
	LongWindow  time.Duration
}

// Scheduler turns a stream of rapid, bursty edits into a bounded rate of
// persistence calls without ever losing the final state.
//
// Debounce is trailing-edge: every Schedule within the window resets the
// timer, and only the latest document is ever written. At most one write is
// in flight; a timer firing mid-write records a single pending re-trigger
// that runs when the write completes, carrying the then-latest state.
//
// A failed remote write lands the same payload in the local fallback store
// and moves the status to saved-local-fallback. There is no automatic remote
// retry; the next save cycle attempts the remote again.
type Scheduler struct {
	remote   docstore.Store
	fallback fallbackstore.Store
	timers   clockport.TimerFactory

	short time.Duration
	long  time.Duration

	contextID domain.ContextID
	latest    func() (domain.CentralItinerary, bool)

	mu            sync.Mutex
	timer         clockport.Timer
	inFlight      bool
	pending       bool
	stopped       bool
	status        SaveStatus
	lastSaved     []byte
	fallbackDirty bool
}

// NewScheduler wires a scheduler to one context's stores.
// latest supplies the current document snapshot; it returns false when no
// document is loaded, in which case a fired save is a no-op.
func NewScheduler(
	remote docstore.Store,
	fallback fallbackstore.Store,
	timers clockport.TimerFactory,
	contextID domain.ContextID,
	latest func() (domain.CentralItinerary, bool),
	cfg SchedulerConfig,
) *Scheduler {
	if cfg.ShortWindow <= 0 {
		cfg.ShortWindow = defaultShortWindow
	}
	if cfg.LongWindow <= 0 {
		cfg.LongWindow = defaultLongWindow
	}
	return &Scheduler{
		remote:    remote,
		fallback:  fallback,
		timers:    timers,
		short:     cfg.ShortWindow,
		long:      cfg.LongWindow,
		contextID: contextID,
		latest:    latest,
		status:    SaveStatusUnsaved,
	}
}

// Schedule arms (or re-arms) the debounce timer for one edit.
func (s *Scheduler) Schedule(tier DebounceTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cancelTimerLocked()
	window := s.short
	if tier == DebounceLong {
		window = s.long
	}
	s.timer = s.timers.AfterFunc(window, s.attempt)
}

// Flush is the manual-save path: it cancels any pending debounce timer and
// performs an immediate save attempt, subject to the same at-most-one-in-flight
// rule. It blocks until the attempt (and any pending re-trigger) completes.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.attempt()
}

// Status returns the current save status.
func (s *Scheduler) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Stop cancels the debounce timer outright. An in-flight write is allowed to
// complete (aborting mid-write risks a partial remote state), but its
// completion no longer updates any scheduler state.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.pending = false
	s.cancelTimerLocked()
}

// noteFallbackEntry records that a fallback entry exists for this context
// (e.g. the controller loaded one); the entry is consumed once the next
// remote write succeeds.
func (s *Scheduler) noteFallbackEntry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbackDirty = true
}

func (s *Scheduler) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// attempt runs one save cycle, looping while a pending re-trigger was
// recorded during the write. It runs on the timer's goroutine (or the
// Flush caller's), never on the mutation path.
func (s *Scheduler) attempt() {
	for {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		if s.inFlight {
			// Defer, don't drop: exactly one re-trigger fires when the
			// in-flight attempt completes.
			s.pending = true
			s.mu.Unlock()
			return
		}
		doc, ok := s.latest()
		if !ok {
			s.mu.Unlock()
			return
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			s.mu.Unlock()
			return
		}
		if s.lastSaved != nil && bytes.Equal(payload, s.lastSaved) {
			// Multiple listeners can schedule a save for the same logical
			// edit; identical snapshots are skipped.
			s.mu.Unlock()
			return
		}
		s.inFlight = true
		s.status = SaveStatusSaving
		id := s.contextID
		s.mu.Unlock()

		putErr := s.remote.Put(context.Background(), id, doc)

		s.mu.Lock()
		s.inFlight = false
		if s.stopped {
			s.mu.Unlock()
			return
		}
		if putErr == nil {
			s.lastSaved = payload
			s.status = SaveStatusSavedRemote
			if s.fallbackDirty {
				s.fallback.Delete(id)
				s.fallbackDirty = false
			}
		} else {
			s.fallback.Put(id, doc)
			s.fallbackDirty = true
			s.status = SaveStatusSavedLocalFallback
		}
		again := s.pending
		s.pending = false
		s.mu.Unlock()
		if !again {
			return
		}
	}
}
