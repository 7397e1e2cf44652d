package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/advice"
	"github.com/patrickwarner/planforge/internal/allocation"
	"github.com/patrickwarner/planforge/internal/analytics"
	"github.com/patrickwarner/planforge/internal/config"
	"github.com/patrickwarner/planforge/internal/observability"
	"github.com/patrickwarner/planforge/internal/planstore"
)

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger    *zap.Logger
	Store     planstore.Store
	Engine    *allocation.Engine
	Analytics analytics.Service
	Advice    advice.Generator
	Metrics   observability.MetricsRegistry
	Config    config.Config
}

// NewServer constructs a Server. A nil advice generator falls back to
// the deterministic template generator.
func NewServer(logger *zap.Logger, store planstore.Store, engine *allocation.Engine, analyticsSvc analytics.Service, adviceGen advice.Generator, metrics observability.MetricsRegistry, cfg config.Config) *Server {
	if adviceGen == nil {
		adviceGen = advice.TemplateGenerator{}
	}
	return &Server{
		Logger:    logger,
		Store:     store,
		Engine:    engine,
		Analytics: analyticsSvc,
		Advice:    adviceGen,
		Metrics:   metrics,
		Config:    cfg,
	}
}

// Routes registers all HTTP routes on a new router.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/plans", s.CreatePlanHandler).Methods("POST")
	r.HandleFunc("/plans/{campaignID}", s.GetPlanHandler).Methods("GET")
	r.HandleFunc("/plans/{campaignID}", s.DeletePlanHandler).Methods("DELETE")
	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
