package middleware

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/protocol"
)

type recordedSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	errs   []error
	status codes.Code
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }
func (s *recordedSpan) SetStatus(code codes.Code, _ string)          { s.status = code }
func (s *recordedSpan) End(...trace.SpanEndOption)                   { s.ended = true }

func (s *recordedSpan) attr(key string) (string, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value.AsString(), true
		}
	}
	return "", false
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordedSpan{name: name, attrs: cfg.Attributes()}
	r.spans = append(r.spans, span)
	return trace.ContextWithSpan(ctx, span), span
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
	name   string
}

func (p *recordingProvider) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	p.name = name
	return p.tracer
}

func TestOpenTelemetrySpan(t *testing.T) {
	tp := &recordingProvider{tracer: &recordingTracer{}}
	var inner trace.Span

	h := Chain(func(ctx context.Context, _ *Call) error {
		inner = trace.SpanFromContext(ctx)
		return nil
	}, OpenTelemetry(
		WithTracerProvider(tp),
		WithTracerName("test"),
		WithAttributeExtractor(func(*Call) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))

	call := &Call{SessionID: "sess-1", Message: &protocol.Message{Type: protocol.TypeEvent, ID: "toast-1", Event: "click"}}
	if err := h(context.Background(), call); err != nil {
		t.Fatal(err)
	}

	if tp.name != "test" {
		t.Errorf("tracer name = %q", tp.name)
	}
	if len(tp.tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.tracer.spans))
	}
	span := tp.tracer.spans[0]
	if span.name != "toastify.event" {
		t.Errorf("span name = %q", span.name)
	}
	if inner != trace.Span(span) {
		t.Error("handler context should carry the span")
	}
	for key, want := range map[string]string{
		"toastify.session_id":   "sess-1",
		"toastify.message_type": "event",
		"toastify.target":       "toast-1",
		"toastify.event":        "click",
		"test.attr":             "ok",
	} {
		if got, _ := span.attr(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if span.status != codes.Ok || !span.ended {
		t.Errorf("status = %v, ended = %v", span.status, span.ended)
	}
}

func TestOpenTelemetryError(t *testing.T) {
	tp := &recordingProvider{tracer: &recordingTracer{}}
	h := Chain(func(context.Context, *Call) error {
		return errors.New("T202").WithField("toast-9")
	}, OpenTelemetry(WithTracerProvider(tp)))

	err := h(context.Background(), newCall(protocol.TypeRemove, "toast-9"))
	if !errors.HasCode(err, "T202") {
		t.Fatalf("error = %v", err)
	}

	span := tp.tracer.spans[0]
	if span.status != codes.Error || len(span.errs) != 1 {
		t.Errorf("status = %v, errs = %v", span.status, span.errs)
	}
	if code, _ := span.attr("toastify.error_code"); code != "T202" {
		t.Errorf("error_code = %q", code)
	}
	if _, ok := span.attr("toastify.event"); ok {
		t.Error("event attribute should be absent for remove")
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tp := &recordingProvider{tracer: &recordingTracer{}}
	called := false
	h := Chain(func(context.Context, *Call) error {
		called = true
		return nil
	}, OpenTelemetry(
		WithTracerProvider(tp),
		WithFilter(func(c *Call) bool { return c.Message.Type != protocol.TypeVisibility }),
	))

	_ = h(context.Background(), newCall(protocol.TypeVisibility, ""))
	if !called {
		t.Error("filtered calls must still reach the handler")
	}
	if len(tp.tracer.spans) != 0 {
		t.Errorf("spans = %d, want 0", len(tp.tracer.spans))
	}
}
