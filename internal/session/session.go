// Package session runs intensity store operations on behalf of the CLI,
// keeping a history of every step together with the segments it produced.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/intensity/internal/script"
	"github.com/Sumatoshi-tech/intensity/pkg/intensity"
	"github.com/Sumatoshi-tech/intensity/pkg/observability"
)

// ErrUnknownOp is returned for a step whose op the session cannot execute.
var ErrUnknownOp = errors.New("unknown operation")

const runIDLength = 12

// Entry is one executed step.
type Entry struct {
	Seq      int                 `json:"seq"`
	Op       script.Op           `json:"op"`
	From     any                 `json:"from,omitempty"`
	To       any                 `json:"to,omitempty"`
	Amount   any                 `json:"amount,omitempty"`
	Segments []intensity.Segment `json:"segments"`
	Error    string              `json:"error,omitempty"`
	Err      error               `json:"-"`
}

// Failed reports whether the step was rejected.
func (e Entry) Failed() bool {
	return e.Err != nil
}

// Report summarizes a script run.
type Report struct {
	RunID    string              `json:"run_id"`
	Name     string              `json:"name,omitempty"`
	Entries  []Entry             `json:"entries"`
	Final    []intensity.Segment `json:"final"`
	Failures int                 `json:"failures"`
}

// Session owns one store and the history of operations applied to it.
// A Session is not safe for concurrent use.
type Session struct {
	id      string
	store   *intensity.Store
	history []Entry
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.StoreMetrics
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger failed and completed steps are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithTracer sets the tracer used for per-step spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) {
		s.tracer = tracer
	}
}

// WithMetrics sets the instruments operations are recorded on.
func WithMetrics(metrics *observability.StoreMetrics) Option {
	return func(s *Session) {
		s.metrics = metrics
	}
}

// New creates a session over an empty store.
func New(opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString()[:runIDLength],
		store:  intensity.New(),
		logger: slog.New(slog.DiscardHandler),
		tracer: nooptrace.NewTracerProvider().Tracer(""),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ID returns the run identifier. Every step runs with it in its context, so an
// [observability.TracingHandler] logs it as run_id.
func (s *Session) ID() string {
	return s.id
}

// Add applies an additive update and records it.
func (s *Session) Add(ctx context.Context, from, to, amount any) ([]intensity.Segment, error) {
	entry := s.Apply(ctx, script.Step{Op: script.OpAdd, From: from, To: to, Amount: amount})

	return entry.Segments, entry.Err
}

// Set applies an absolute update and records it.
func (s *Session) Set(ctx context.Context, from, to, amount any) ([]intensity.Segment, error) {
	entry := s.Apply(ctx, script.Step{Op: script.OpSet, From: from, To: to, Amount: amount})

	return entry.Segments, entry.Err
}

// Clear empties the store and records it. History is kept.
func (s *Session) Clear(ctx context.Context) {
	s.Apply(ctx, script.Step{Op: script.OpClear})
}

// Segments records and returns the current segments.
func (s *Session) Segments(ctx context.Context) []intensity.Segment {
	return s.Apply(ctx, script.Step{Op: script.OpSegments}).Segments
}

// Reset empties both the store and the history.
func (s *Session) Reset() {
	s.store.Clear()
	s.history = nil
}

// History returns a copy of the executed steps.
func (s *Session) History() []Entry {
	return slices.Clone(s.history)
}

// Apply executes one step, records it and returns the resulting entry.
// A rejected step leaves the store untouched and carries its error.
func (s *Session) Apply(ctx context.Context, step script.Step) Entry {
	seq := len(s.history) + 1
	ctx = observability.ContextWithStep(observability.ContextWithRun(ctx, s.id), seq)

	ctx, span := s.tracer.Start(ctx, "intensity."+string(step.Op),
		trace.WithAttributes(attribute.String("op", string(step.Op))))
	defer span.End()

	start := time.Now()
	segments, err := s.execute(step)
	elapsed := time.Since(start)

	entry := Entry{
		Seq:      seq,
		Op:       step.Op,
		From:     step.From,
		To:       step.To,
		Amount:   step.Amount,
		Segments: segments,
		Err:      err,
	}

	status := observability.StatusOK

	if err != nil {
		status = observability.StatusError
		entry.Error = err.Error()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		s.logger.WarnContext(ctx, "step rejected",
			slog.String("op", string(step.Op)),
			slog.Any("error", err))
	} else {
		s.logger.DebugContext(ctx, "step applied",
			slog.String("op", string(step.Op)),
			slog.Int("segments", len(segments)),
			slog.Int("change_points", s.store.Len()))
	}

	s.metrics.RecordOperation(ctx, string(step.Op), status, elapsed, s.store.Len())

	s.history = append(s.history, entry)

	return entry
}

func (s *Session) execute(step script.Step) ([]intensity.Segment, error) {
	switch step.Op {
	case script.OpAdd:
		return s.store.AddValues(step.From, step.To, step.Amount)
	case script.OpSet:
		return s.store.SetValues(step.From, step.To, step.Amount)
	case script.OpClear:
		s.store.Clear()

		return s.store.Segments(), nil
	case script.OpSegments:
		return s.store.Segments(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
}

// Run executes every step of sc in order. Failed steps are recorded and
// execution continues with the next step.
func (s *Session) Run(ctx context.Context, sc *script.Script) Report {
	ctx = observability.ContextWithRun(ctx, s.id)

	ctx, span := s.tracer.Start(ctx, "intensity.run",
		trace.WithAttributes(
			attribute.String("run_id", s.id),
			attribute.Int("steps", len(sc.Steps)),
		))
	defer span.End()

	first := len(s.history)

	s.logger.InfoContext(ctx, "script started",
		slog.String("name", sc.Name),
		slog.Int("steps", len(sc.Steps)))

	for _, step := range sc.Steps {
		s.Apply(ctx, step)
	}

	report := Report{
		RunID:   s.id,
		Name:    sc.Name,
		Entries: append([]Entry{}, s.history[first:]...),
		Final:   s.store.Segments(),
	}

	for _, entry := range report.Entries {
		if entry.Failed() {
			report.Failures++
		}
	}

	s.logger.InfoContext(ctx, "script finished",
		slog.String("name", sc.Name),
		slog.Int("failures", report.Failures),
		slog.Int("change_points", s.store.Len()))

	return report
}
