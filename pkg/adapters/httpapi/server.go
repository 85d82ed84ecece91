// Package httpapi serves the debug surface: classify a posted tree, score
// a posted offer, report health, and expose metrics. It is tooling around
// the stateless classification entry point; the dispatch loop never goes
// through it.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sjtrotter/dashbuddy/internal/classify"
	"github.com/sjtrotter/dashbuddy/internal/evaluate"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Server holds the stateless cores the debug routes call into.
type Server struct {
	registry *classify.Registry
	strategy evaluate.Strategy
	logger   *slog.Logger
}

// NewHandler builds the HTTP handler. gatherer may be nil to omit the
// metrics route.
func NewHandler(registry *classify.Registry, strategy evaluate.Strategy, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{registry: registry, strategy: strategy, logger: logger}

	r := chi.NewRouter()
	r.Post("/identify", s.handleIdentify)
	r.Post("/evaluate", s.handleEvaluate)
	r.Get("/healthz", s.handleHealth)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	var root domain.Node
	if err := json.NewDecoder(r.Body).Decode(&root); err != nil {
		http.Error(w, "malformed tree: "+err.Error(), http.StatusBadRequest)
		return
	}
	root.RebuildParents()

	info := s.registry.Identify(&root)
	s.writeJSON(w, info)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if s.strategy == nil {
		http.Error(w, "no evaluator configured", http.StatusNotImplemented)
		return
	}
	var offer domain.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		http.Error(w, "malformed offer: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, s.strategy.Evaluate(offer))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}
