// Package api provides read-only HTTP endpoints over a generated surface.
// All endpoints are GET; generation itself is finished before the server
// starts, so handlers never touch the fold chain.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/talgya/ridgeline/internal/terrain"
)

// Server serves a finished surface over HTTP.
type Server struct {
	Surface *terrain.Surface
	Classes [][]terrain.Class
	RunID   string
	Port    int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	handler := s.Handler()
	go func() {
		slog.Info("api listening", "addr", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("api server stopped", "error", err)
		}
	}()
}

// Handler returns the route mux, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/terrain", s.handleTerrain)
	mux.HandleFunc("/api/v1/strips", s.handleStrips)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	min, max := s.Surface.Bounds()
	writeJSON(w, map[string]any{
		"run_id":     s.RunID,
		"width":      s.Surface.Width(),
		"strips":     s.Surface.Len(),
		"min_height": min,
		"max_height": max,
		"mean":       s.Surface.Mean(),
	})
}

func (s *Server) handleTerrain(w http.ResponseWriter, r *http.Request) {
	counts := terrain.ClassCounts(s.Classes)
	named := make(map[string]int, len(counts))
	for c, n := range counts {
		named[terrain.ClassName(c)] = n
	}
	writeJSON(w, named)
}

// handleStrips returns a window of columns: ?from=N&count=M (count capped
// at 64).
func (s *Server) handleStrips(w http.ResponseWriter, r *http.Request) {
	from, _ := strconv.Atoi(r.URL.Query().Get("from"))
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count <= 0 {
		count = 16
	}
	if count > 64 {
		count = 64
	}
	if from < 0 || from >= s.Surface.Len() {
		http.Error(w, "from out of range", http.StatusBadRequest)
		return
	}
	end := from + count
	if end > s.Surface.Len() {
		end = s.Surface.Len()
	}

	strips := make([][]float64, 0, end-from)
	for col := from; col < end; col++ {
		strips = append(strips, s.Surface.Column(col))
	}
	writeJSON(w, map[string]any{
		"from":   from,
		"count":  len(strips),
		"strips": strips,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}
