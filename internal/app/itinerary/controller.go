package itinerary

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
	clockport "github.com/atlasvoyages/itinerary-api/internal/ports/out/clock"
	"github.com/atlasvoyages/itinerary-api/internal/ports/out/docstore"
	"github.com/atlasvoyages/itinerary-api/internal/ports/out/fallbackstore"
)

// State is the controller lifecycle:
// Uninitialized -> Loading -> Ready -> (mutating) -> Cleared.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateCleared       State = "cleared"
)

// Mutation is one day-level operation applied atomically to the document.
type Mutation func(e *Editor, doc domain.CentralItinerary) (domain.CentralItinerary, error)

func AddDayOp() Mutation {
	return func(e *Editor, doc domain.CentralItinerary) (domain.CentralItinerary, error) {
		return e.AddDay(doc)
	}
}

func RemoveDayOp(index int) Mutation {
	return func(e *Editor, doc domain.CentralItinerary) (domain.CentralItinerary, error) {
		return e.RemoveDay(doc, index)
	}
}

func UpdateDayOp(index int, patch DayPatch) Mutation {
	return func(e *Editor, doc domain.CentralItinerary) (domain.CentralItinerary, error) {
		return e.UpdateDay(doc, index, patch)
	}
}

func UpdateDayByIDOp(id domain.DayID, patch DayPatch) Mutation {
	return func(e *Editor, doc domain.CentralItinerary) (domain.CentralItinerary, error) {
		return e.UpdateDayByID(doc, id, patch)
	}
}

// ControllerConfig parameterizes one controller instance.
type ControllerConfig struct {
	Markup    domain.MarkupConfig
	Currency  string
	Scheduler SchedulerConfig

	// NewDocument creates the draft document when the remote store has no
	// entry for the context. Nil gets a plain empty draft.
	NewDocument func(id domain.ContextID, now time.Time) domain.CentralItinerary
}

// Controller owns the single in-memory copy of one context's itinerary,
// applies mutations, notifies subscribed views, and schedules persistence.
// Views subscribe read-only; all writes go through Mutate.
type Controller struct {
	contextID domain.ContextID
	remote    docstore.Store
	fallback  fallbackstore.Store
	editor    *Editor
	clk       clockport.Clock
	sched     *Scheduler

	newDocument func(id domain.ContextID, now time.Time) domain.CentralItinerary

	mu      sync.Mutex
	state   State
	doc     domain.CentralItinerary
	subs    map[int]func(domain.CentralItinerary)
	nextSub int
	queued  []queuedMutation
}

type queuedMutation struct {
	op   Mutation
	tier DebounceTier
}

func NewController(
	contextID domain.ContextID,
	remote docstore.Store,
	fallback fallbackstore.Store,
	clk clockport.Clock,
	timers clockport.TimerFactory,
	cfg ControllerConfig,
) *Controller {
	c := &Controller{
		contextID:   contextID,
		remote:      remote,
		fallback:    fallback,
		editor:      NewEditor(clk, cfg.Markup),
		clk:         clk,
		newDocument: cfg.NewDocument,
		state:       StateUninitialized,
		subs:        make(map[int]func(domain.CentralItinerary)),
	}
	if c.newDocument == nil {
		currency := cfg.Currency
		c.newDocument = func(id domain.ContextID, now time.Time) domain.CentralItinerary {
			return NewDraft(id, domain.ContextTagQuery, "", now, currency, now)
		}
	}
	c.sched = NewScheduler(remote, fallback, timers, contextID, c.latestForSave, cfg.Scheduler)
	return c
}

// Editor exposes the controller's editor for deterministic-ID test setup.
func (c *Controller) Editor() *Editor { return c.editor }

// Load fetches or creates the context's document. On a store read failure the
// controller stays Uninitialized and Load may simply be called again. A remote
// document always wins over a stale fallback entry; the fallback is only used
// when the remote has nothing for the context.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateReady, StateLoading:
		c.mu.Unlock()
		return nil
	case StateCleared:
		c.mu.Unlock()
		return errNotReady(StateCleared)
	}
	c.state = StateLoading
	c.mu.Unlock()

	doc, err := c.remote.Get(ctx, c.contextID)

	c.mu.Lock()
	if c.state != StateLoading {
		// Cleared while the fetch was running; drop the result.
		c.mu.Unlock()
		return errNotReady(StateCleared)
	}
	usedFallback := false
	switch {
	case err == nil:
		// Remote wins over any fallback entry.
	case errors.Is(err, docstore.ErrNotFound):
		if fb, ok := c.fallback.Get(c.contextID); ok {
			doc = fb
			usedFallback = true
		} else {
			doc = c.newDocument(c.contextID, c.clk.Now())
		}
	default:
		c.state = StateUninitialized
		c.queued = nil
		c.mu.Unlock()
		return &Error{
			Status:  502,
			Code:    CodeLoadFailed,
			Message: fmt.Sprintf("load itinerary for context %q: %v", c.contextID, err),
		}
	}
	c.doc = doc
	c.state = StateReady
	queued := c.queued
	c.queued = nil
	c.mu.Unlock()

	// Lock order: the scheduler's save path takes its own lock before asking
	// the controller for the latest document, so the controller never calls
	// into the scheduler while holding c.mu.
	if usedFallback {
		c.sched.noteFallbackEntry()
	}

	// Replay mutations accepted while loading, preserving submission order.
	// A queued mutation that no longer applies is dropped; its caller already
	// returned and has no error channel left.
	for _, q := range queued {
		_ = c.Mutate(q.op, q.tier)
	}
	return nil
}

// Mutate applies one day-level operation atomically. Subscribers are notified
// synchronously after the in-memory document updates and before persistence
// is scheduled; UI responsiveness never waits on network I/O. Persistence
// failures are not surfaced here, only through SaveStatus.
func (c *Controller) Mutate(op Mutation, tier DebounceTier) error {
	c.mu.Lock()
	switch c.state {
	case StateLoading:
		c.queued = append(c.queued, queuedMutation{op: op, tier: tier})
		c.mu.Unlock()
		return nil
	case StateReady:
	default:
		st := c.state
		c.mu.Unlock()
		return errNotReady(st)
	}

	next, err := op(c.editor, c.doc)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.doc = next
	snapshot := next.Clone()
	subs := make([]func(domain.CentralItinerary), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	c.sched.Schedule(tier)
	return nil
}

// Subscribe registers a read-only view callback and returns its cancel func.
// Callbacks receive a snapshot clone; mutating it never touches the document.
func (c *Controller) Subscribe(fn func(domain.CentralItinerary)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Snapshot returns a clone of the current document, or false when no document
// is loaded.
func (c *Controller) Snapshot() (domain.CentralItinerary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return domain.CentralItinerary{}, false
	}
	return c.doc.Clone(), true
}

// Proposal recomputes the proposal snapshot for the current document.
func (c *Controller) Proposal(party PartyComposition) (domain.ProposalSummarySnapshot, error) {
	c.mu.Lock()
	if c.state != StateReady {
		st := c.state
		c.mu.Unlock()
		return domain.ProposalSummarySnapshot{}, errNotReady(st)
	}
	doc := c.doc.Clone()
	c.mu.Unlock()
	return BuildProposalSnapshot(doc, party, c.editor.markup, c.clk.Now())
}

// State returns the controller lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SaveStatus reports the scheduler's persistence status.
func (c *Controller) SaveStatus() SaveStatus {
	return c.sched.Status()
}

// Save bypasses the debounce timer and attempts persistence immediately.
func (c *Controller) Save() {
	c.sched.Flush()
}

// Clear discards the in-memory document and unsubscribes all listeners. An
// in-flight save completes but no longer updates state. The controller is
// finished after Clear; callers create a fresh one to reload the context.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.state = StateCleared
	c.doc = domain.CentralItinerary{}
	c.subs = map[int]func(domain.CentralItinerary){}
	c.queued = nil
	c.mu.Unlock()
	c.sched.Stop()
}

func (c *Controller) latestForSave() (domain.CentralItinerary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return domain.CentralItinerary{}, false
	}
	return c.doc.Clone(), true
}

func errNotReady(st State) *Error {
	return &Error{
		Status:  409,
		Code:    CodeNotReady,
		Message: fmt.Sprintf("itinerary not ready (state %s)", st),
		Details: map[string]any{"state": string(st)},
	}
}
