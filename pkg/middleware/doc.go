// Package middleware wraps the handling of client messages with
// cross-cutting behaviour.
//
// A Handler processes one decoded client message for one session. A
// Middleware wraps a Handler; Chain composes them so the first middleware
// is the outermost:
//
//	h := middleware.Chain(session.handle,
//	    middleware.Logging(logger),
//	    metrics.Middleware(),
//	    middleware.OpenTelemetry(middleware.WithTracerName("toastify")),
//	)
//
// # Prometheus Metrics
//
// Metrics collects message counts and durations, and it is also a
// toast.Observer, so passing it as the toast host observer records the
// toast lifecycle:
//   - toastify_messages_total: Messages handled by type and status
//   - toastify_message_duration_seconds: Message handling duration
//   - toastify_toasts_shown_total: Toasts that finished their entry frame
//   - toastify_toasts_closed_total: Toasts closed, by reason
//   - toastify_toasts_active: Toasts currently shown
//   - toastify_sessions_active: Live sessions
//   - toastify_renders_total: Render messages sent
//
// Expose them with promhttp.HandlerFor on the same registry.
//
// # OpenTelemetry
//
// OpenTelemetry starts a span per message using the global tracer provider
// unless WithTracerProvider is given. The span context is passed down in
// the handler's context.Context.
package middleware
