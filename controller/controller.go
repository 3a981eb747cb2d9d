// Package controller drives a weather search: it owns the query being typed,
// the remember flag and the record on display, and turns commit events into
// lookups.
//
// Every lookup is tagged with a request id. Committing again cancels the
// previous lookup and any result that arrives for a superseded id is dropped,
// so the record on display always belongs to the most recent commit.
package controller

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"weathercard/datasource"
	"weathercard/memory"
	"weathercard/models"

	"github.com/google/uuid"
)

// FailureMessage is shown for every failed lookup regardless of its kind
const FailureMessage = "Could not find entered location!"

// NotificationTimeout is how long the failure notification stays up
const NotificationTimeout = 3 * time.Second

// State of the search interaction
type State int

const (
	Idle State = iota
	Editing
	Searching
	Displaying
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Searching:
		return "searching"
	case Displaying:
		return "displaying"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Notification is a transient message for the user
type Notification struct {
	Message  string
	Level    string
	Position string
	Duration time.Duration
	Kind     datasource.Kind
}

// Notifier shows notifications to the user
type Notifier interface {
	Notify(n Notification)
}

// Alert plays the audible failure cue
type Alert interface {
	Play()
}

// Snapshot is a copy of the controller state
type Snapshot struct {
	State     State
	Query     string
	Remember  bool
	Record    *models.WeatherRecord
	LastError error
}

// Controller is safe for concurrent use
type Controller struct {
	provider datasource.WeatherProvider
	memory   memory.LocationMemory
	notifier Notifier
	alert    Alert
	logger   *slog.Logger

	mu       sync.Mutex
	mounted  bool
	state    State
	query    string
	remember bool
	record   *models.WeatherRecord
	lastErr  error
	inflight uuid.UUID
	cancel   context.CancelFunc
	onChange func(Snapshot)
}

// New creates a controller in the Idle state. A nil notifier or alert is
// replaced by a no-op and a nil logger by slog.Default().
func New(provider datasource.WeatherProvider, mem memory.LocationMemory, notifier Notifier, alert Alert, logger *slog.Logger) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if alert == nil {
		alert = nopAlert{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		provider: provider,
		memory:   mem,
		notifier: notifier,
		alert:    alert,
		logger:   logger,
	}
}

// OnChange registers fn to receive a snapshot after every transition.
// fn runs on the goroutine that caused the transition.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Mount consults the location memory once. A stored location seeds the query
// and checks the remember flag. Later calls do nothing.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.mu.Unlock()

	location, ok, err := c.memory.Load(ctx)
	if err != nil {
		c.logger.Warn("failed to load remembered location", "error", err)
		ok = false
	}

	c.mu.Lock()
	if ok {
		c.remember = true
		// input typed while the memory was loading wins
		if c.query == "" {
			c.query = location
		}
		if c.state == Idle {
			c.state = Editing
		}
	} else {
		c.remember = false
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if !ok {
		c.logger.Info("No location stored")
	}
	c.emit(snap)
}

// Type replaces the query with the current contents of the input
func (c *Controller) Type(query string) {
	c.mu.Lock()
	c.query = query
	if c.state != Searching {
		c.state = Editing
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
}

// ToggleRemember sets the remember flag and stores the current query as the
// default location. Unchecking stores the query too; it never erases it.
// A blank query leaves the stored location untouched.
func (c *Controller) ToggleRemember(ctx context.Context, checked bool) {
	c.mu.Lock()
	c.remember = checked
	query := c.query
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		c.logger.Debug("blank query, keeping stored location", "remember", checked)
		c.emit(snap)
		return
	}
	if err := c.memory.Save(ctx, query); err != nil {
		c.logger.Warn("failed to save remembered location", "query", query, "error", err)
	}
	c.emit(snap)
}

// Commit starts a lookup for the current query. It returns false without doing
// anything when the query is blank.
func (c *Controller) Commit(ctx context.Context) (*Pending, bool) {
	c.mu.Lock()
	query := c.query
	if strings.TrimSpace(query) == "" {
		c.mu.Unlock()
		return nil, false
	}

	if c.cancel != nil {
		c.cancel()
	}
	id := uuid.New()
	lookupCtx, cancel := context.WithCancel(ctx)
	c.inflight = id
	c.cancel = cancel
	c.state = Searching
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("lookup started", "request_id", id, "query", query)
	c.emit(snap)

	p := &Pending{ID: id, Query: query, done: make(chan struct{})}
	go c.run(lookupCtx, cancel, p)
	return p, true
}

// Close cancels the in-flight lookup, if any. Its result is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inflight = uuid.Nil
	if c.state == Searching {
		c.state = Editing
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, p *Pending) {
	defer close(p.done)
	defer cancel()

	record, err := c.provider.GetWeather(ctx, p.Query)
	p.applied = c.apply(p.ID, record, err)
}

// apply folds a lookup result into the state if it belongs to the current request
func (c *Controller) apply(id uuid.UUID, record models.WeatherRecord, err error) bool {
	c.mu.Lock()
	if id != c.inflight {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded lookup", "request_id", id, "error", err)
		return false
	}
	c.inflight = uuid.Nil
	c.cancel = nil
	c.query = ""
	c.remember = false

	if err == nil {
		c.record = &record
		c.lastErr = nil
		c.state = Displaying
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Info("lookup succeeded", "request_id", id, "location", record.Name)
		c.emit(snap)
		return true
	}

	c.lastErr = err
	c.state = Failed
	failed := c.snapshotLocked()
	c.state = Editing
	snap := c.snapshotLocked()
	c.mu.Unlock()

	kind := datasource.KindOf(err)
	c.logger.Warn("lookup failed", "request_id", id, "kind", kind, "error", err)
	c.alert.Play()
	c.notifier.Notify(Notification{
		Message:  FailureMessage,
		Level:    "error",
		Position: "top-right",
		Duration: NotificationTimeout,
		Kind:     kind,
	})
	c.emit(failed)
	c.emit(snap)
	return true
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     c.state,
		Query:     c.query,
		Remember:  c.remember,
		LastError: c.lastErr,
	}
	if c.record != nil {
		rec := *c.record
		rec.Weather = slices.Clone(rec.Weather)
		rec.Raw = slices.Clone(rec.Raw)
		snap.Record = &rec
	}
	return snap
}

func (c *Controller) emit(snap Snapshot) {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// Pending is a lookup started by Commit
type Pending struct {
	ID    uuid.UUID
	Query string

	done    chan struct{}
	applied bool
}

// Done is closed once the result has been applied or discarded
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the lookup finishes. applied is false when a newer commit
// superseded this one.
func (p *Pending) Wait(ctx context.Context) (applied bool, err error) {
	select {
	case <-p.done:
		return p.applied, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

type nopAlert struct{}

func (nopAlert) Play() {}
