package fetch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/package-shark/internal/metrics"
	"github.com/eugenenazirov/package-shark/internal/notify"
	"github.com/eugenenazirov/package-shark/internal/packs"
)

// Orchestrator owns the result set and the lookup state.
type Orchestrator struct {
	client   packs.Client
	notifier notify.Notifier
	recorder *metrics.Recorder
	logger   *zap.Logger
	clock    func() time.Time

	mu      sync.Mutex
	seq     uint64
	status  Status
	results packs.ResultSet
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNotifier sets the collaborator told about failed lookups.
func WithNotifier(n notify.Notifier) Option {
	return func(o *Orchestrator) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithMetrics records lookup counts and durations on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// New constructs an Orchestrator backed by client.
func New(client packs.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:   client,
		notifier: notify.Nop,
		logger:   zap.NewNop(),
		clock:    time.Now,
		results:  packs.ResultSet{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Begin issues a new lookup for quantity: it takes the next sequence number,
// marks the state in-flight and clears the result set.
func (o *Orchestrator) Begin(quantity int) Request {
	o.mu.Lock()
	o.seq++
	req := Request{Seq: o.seq, Quantity: quantity, IssuedAt: o.clock()}
	o.status = InFlight
	o.results = packs.ResultSet{}
	o.mu.Unlock()

	o.recorder.RecordStarted()
	o.logger.Debug("fetch issued", zap.Uint64("seq", req.Seq), zap.Int("quantity", req.Quantity))
	return req
}

// Run performs the lookup for req. It does not touch orchestrator state, so it
// may run on any goroutine.
func (o *Orchestrator) Run(ctx context.Context, req Request) Outcome {
	result, err := o.client.Packs(ctx, req.Quantity)
	return Outcome{Request: req, Result: result, Err: err}
}

// Complete reconciles out into the visible state. Only the latest issued,
// still unresolved lookup is applied; anything else is discarded untouched.
func (o *Orchestrator) Complete(out Outcome) Resolution {
	o.mu.Lock()
	if out.Seq == 0 || out.Seq != o.seq || o.status != InFlight {
		latest := o.seq
		o.mu.Unlock()

		o.recorder.RecordResolution(metrics.ResolutionSuperseded, o.since(out.IssuedAt))
		o.logger.Debug("discarding superseded fetch",
			zap.Uint64("seq", out.Seq),
			zap.Uint64("latest_seq", latest),
			zap.Bool("failed", out.Err != nil),
		)
		return Superseded
	}

	o.status = Idle
	if out.Err != nil {
		o.results = packs.ResultSet{}
		o.mu.Unlock()

		o.recorder.RecordResolution(metrics.ResolutionFailed, o.since(out.IssuedAt))
		o.logger.Error("fetch failed",
			zap.Uint64("seq", out.Seq),
			zap.Int("quantity", out.Quantity),
			zap.Error(out.Err),
		)
		o.notifier.Notify(notify.Event{Message: FailureMessage, Seq: out.Seq})
		return Failed
	}

	o.results = out.Result.Clone()
	packCount := len(o.results)
	o.mu.Unlock()

	o.recorder.RecordResolution(metrics.ResolutionApplied, o.since(out.IssuedAt))
	o.logger.Info("fetch applied",
		zap.Uint64("seq", out.Seq),
		zap.Int("quantity", out.Quantity),
		zap.Int("pack_sizes", packCount),
	)
	return Applied
}

// FetchPacks issues, runs and reconciles a lookup in one blocking call.
func (o *Orchestrator) FetchPacks(ctx context.Context, quantity int) Resolution {
	return o.Complete(o.Run(ctx, o.Begin(quantity)))
}

// Results returns a copy of the current result set.
func (o *Orchestrator) Results() packs.ResultSet {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.results.Clone()
}

// State returns the current status and latest issued sequence number.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{Status: o.status, Seq: o.seq}
}

func (o *Orchestrator) since(t time.Time) time.Duration {
	if t.IsZero() {
		return 0
	}
	return o.clock().Sub(t)
}
