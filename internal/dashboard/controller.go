package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// ErrNoCurrent is returned before the first successful recompute.
var ErrNoCurrent = errors.New("no dashboard computed yet")

// State is the controller's position in its two-state cycle.
type State int32

const (
	StateIdle State = iota
	StateRecomputing
)

func (s State) String() string {
	if s == StateRecomputing {
		return "recomputing"
	}
	return "idle"
}

// RecordSource yields the records of a closed date range.
type RecordSource interface {
	Range(start, end rental.Date) []rental.Record
}

// Option customises a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSequential disables concurrent per-panel aggregation.
func WithSequential() Option {
	return func(c *Controller) { c.parallel = false }
}

// Controller recomputes the whole dashboard on every date-range change. A recompute
// either completes and replaces the current dashboard, or fails and leaves it as is.
type Controller struct {
	mu       sync.Mutex
	source   RecordSource
	state    atomic.Int32
	current  *Dashboard
	parallel bool
	now      func() time.Time
}

// NewController creates a Controller over source.
func NewController(source RecordSource, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		parallel: true,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports whether a recompute is in progress.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Current returns the last successfully computed dashboard.
func (c *Controller) Current() (Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Dashboard{}, ErrNoCurrent
	}
	return *c.current, nil
}

// Update filters the dataset to [start, end] and rebuilds every chart and the
// summary. An inverted or empty range is not an error: it yields zero metrics and
// empty charts.
func (c *Controller) Update(ctx context.Context, start, end rental.Date) (Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Store(int32(StateRecomputing))
	defer c.state.Store(int32(StateIdle))

	began := time.Now()
	records := c.source.Range(start, end)

	out, err := Build(ctx, records, c.parallel)
	if err != nil {
		log.Printf("ERROR: dashboard recompute for %s..%s failed, keeping previous: %v", start, end, err)
		return Dashboard{}, err
	}

	dash := Dashboard{
		ID:          uuid.NewString(),
		Start:       start,
		End:         end,
		Records:     len(records),
		Summary:     out.Summary,
		Charts:      out.Charts,
		GeneratedAt: c.now(),
	}
	c.current = &dash

	log.Printf("DEBUG: dashboard %s recomputed for %s..%s from %d records in %s",
		dash.ID, start, end, len(records), time.Since(began))
	return dash, nil
}
