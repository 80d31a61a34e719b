package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/protocol"
	"github.com/toastify-dev/toastify/pkg/toast"
)

//go:embed static
var staticFiles embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFiles, "static/index.html"))

func staticHandler() http.Handler {
	sub, _ := fs.Sub(staticFiles, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Title string }{Title: s.config.Title}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

// maxBroadcastBody bounds the options object posted to /api/toasts.
const maxBroadcastBody = protocol.MaxMessageSize

// handleBroadcast shows the posted options as a toast in every session.
func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBroadcastBody+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("T200").Wrap(err))
		return
	}
	if len(body) > maxBroadcastBody {
		writeError(w, http.StatusRequestEntityTooLarge, errors.New("T200").WithDetail("body too large"))
		return
	}

	opts, err := toast.ParseOptionsJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	n := s.sessions.Broadcast(opts...)
	s.logger.Info("toast broadcast", "sessions", n)
	writeJSON(w, http.StatusAccepted, map[string]int{"sessions": n})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, protocol.Error(err))
}
