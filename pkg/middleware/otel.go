package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/toastify-dev/toastify/internal/errors"
)

const defaultTracerName = "toastify"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "toastify").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which calls to trace. If nil, all calls are traced.
	Filter func(call *Call) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(call *Call) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithFilter sets a filter function for calls.
func WithFilter(filter func(call *Call) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(call *Call) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that starts a span for every call.
//
// Spans are named "toastify.<type>" and carry the session id, the toast or
// element id and the DOM event type when present. Failed calls record the
// error and, for coded errors, the code.
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) error {
			if config.Filter != nil && !config.Filter(call) {
				return next(ctx, call)
			}

			msg := call.Message
			attrs := []attribute.KeyValue{
				attribute.String("toastify.session_id", call.SessionID),
				attribute.String("toastify.message_type", string(msg.Type)),
			}
			if msg.ID != "" {
				attrs = append(attrs, attribute.String("toastify.target", msg.ID))
			}
			if msg.Event != "" {
				attrs = append(attrs, attribute.String("toastify.event", msg.Event))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(call)...)
			}

			ctx, span := tracer.Start(ctx, "toastify."+string(msg.Type),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			err := next(ctx, call)
			if err != nil {
				span.RecordError(err)
				if te := errors.FromError(err, ""); te.Code != "" {
					span.SetAttributes(attribute.String("toastify.error_code", te.Code))
				}
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return err
		}
	}
}
