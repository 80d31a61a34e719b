// Package server hosts toasts for browser clients.
//
// Each WebSocket connection gets a Session: its own document, its own frame
// loop and the toasts shown in it. The browser holds no widget state. It
// forwards user input as protocol messages and replaces its body markup
// with every render message the session sends.
//
// Routes:
//
//	GET  /               demo page with the stylesheet and thin client
//	GET  /ws             WebSocket endpoint
//	POST /api/toasts     show a toast in every live session
//	GET  /api/sessions   live session count
//	GET  /metrics        Prometheus metrics (when a gatherer is configured)
//	GET  /static/*       stylesheet and client script
//
// # Threading
//
// Everything touching a session's document or toasts runs on that session's
// frame loop goroutine. The read pump posts decoded messages onto the loop;
// the write pump owns writes to the connection.
package server
