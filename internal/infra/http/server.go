// File: internal/infra/http/server.go
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sms-campaign/internal/domain/ports/repository"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes health, ledger status and Prometheus metrics while a
// campaign runs. It is optional; port 0 means it is never started.
type Server struct {
	ledger repository.RecipientLedger
	log    *zerolog.Logger
	server *http.Server
}

func NewServer(port int, ledger repository.RecipientLedger, logger *zerolog.Logger) *Server {
	s := &Server{ledger: ledger, log: logger}

	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
	return s
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Admin server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	total := s.ledger.Len()
	unsent := s.ledger.UnsentCount()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{
		"recipients": total,
		"unsent":     unsent,
		"sent":       total - unsent,
	})
}
