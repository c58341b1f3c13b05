package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrRunID   = "run_id"
	attrSeq     = "seq"
	attrService = "service"
	attrEnv     = "env"
	attrMode    = "mode"
)

type runKey struct{}

// runInfo identifies the script run and step a record belongs to.
type runInfo struct {
	runID string
	seq   int
}

// ContextWithRun tags ctx with the run ID of a session.
func ContextWithRun(ctx context.Context, runID string) context.Context {
	info, _ := ctx.Value(runKey{}).(runInfo)
	info.runID = runID

	return context.WithValue(ctx, runKey{}, info)
}

// ContextWithStep tags ctx with the sequence number of the step being executed.
func ContextWithStep(ctx context.Context, seq int) context.Context {
	info, _ := ctx.Value(runKey{}).(runInfo)
	info.seq = seq

	return context.WithValue(ctx, runKey{}, info)
}

// RunFromContext returns the run ID and step sequence stored in ctx.
// seq is 0 outside a step.
func RunFromContext(ctx context.Context) (runID string, seq int) {
	info, _ := ctx.Value(runKey{}).(runInfo)

	return info.runID, info.seq
}

// TracingHandler is an [slog.Handler] that injects OpenTelemetry trace context
// (trace_id, span_id), the session run and step (run_id, seq) and service
// metadata into every log record.
// Service attributes are attached at construction so they stay at the top
// level even when groups are used.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps an [slog.Handler], injecting trace context and service metadata.
func NewTracingHandler(inner slog.Handler, service, env string, appMode AppMode) *TracingHandler {
	attrs := []slog.Attr{
		slog.String(attrService, service),
		slog.String(attrMode, string(appMode)),
	}

	if env != "" {
		attrs = append(attrs, slog.String(attrEnv, env))
	}

	return &TracingHandler{
		inner: inner.WithAttrs(attrs),
	}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds run and trace context attributes from ctx, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	runID, seq := RunFromContext(ctx)
	if runID != "" {
		record.AddAttrs(slog.String(attrRunID, runID))
	}

	if seq > 0 {
		record.AddAttrs(slog.Int(attrSeq, seq))
	}

	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new TracingHandler with additional attributes on the inner handler.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{
		inner: th.inner.WithAttrs(attrs),
	}
}

// WithGroup returns a new TracingHandler with a group prefix on the inner handler.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{
		inner: th.inner.WithGroup(name),
	}
}

// NewLogger builds the structured logger described by cfg, writing to w.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(w, handlerOpts)
	} else {
		inner = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(NewTracingHandler(inner, cfg.ServiceName, cfg.Environment, cfg.Mode))
}
