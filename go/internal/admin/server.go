package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/onboarding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Pinger checks that the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// ServerConfig configures the admin server
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
	// BaseContext is the parent of background bulk runs
	BaseContext context.Context
}

// Server exposes health, metrics, live progress and onboarding triggers
type Server struct {
	runner   *Runner
	health   Pinger
	progress http.Handler
	base     context.Context
}

// NewServer builds the admin HTTP server. progress serves the websocket
// endpoint and may be nil.
func NewServer(cfg ServerConfig, runner *Runner, health Pinger, progress http.Handler) *http.Server {
	base := cfg.BaseContext
	if base == nil {
		base = context.Background()
	}

	s := &Server{
		runner:   runner,
		health:   health,
		progress: progress,
		base:     base,
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: origins,
		AllowedHeaders: []string{"*"},
	})

	// Setup HTTP/2 server
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(c.Handler(s.Routes()), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Routes returns the admin mux
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	if s.progress != nil {
		mux.Handle("GET /ws/progress", s.progress)
	}
	mux.HandleFunc("POST /api/onboard/leagues", s.handleOnboardLeague)
	mux.HandleFunc("POST /api/onboard/bulk", s.handleOnboardBulk)
	mux.HandleFunc("GET /api/runs/last", s.handleLastRun)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			http.Error(w, "store unreachable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}

func (s *Server) handleOnboardLeague(w http.ResponseWriter, r *http.Request) {
	var desc leagues.LeagueDescriptor
	if err := json.NewDecoder(r.Body).Decode(&desc); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid league descriptor: %w", err))
		return
	}
	if desc.ExternalID == "" || desc.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("external_id and name are required"))
		return
	}

	res, err := s.runner.OnboardLeague(r.Context(), desc)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, leagueResponse{Result: res, Error: res.ErrorMessage()})
}

type leagueResponse struct {
	onboarding.Result
	Error string `json:"error,omitempty"`
}

// BulkRequest selects the leagues of a bulk run. Explicit leagues win over
// discover; with neither the seed list is used.
type BulkRequest struct {
	Leagues  []leagues.LeagueDescriptor `json:"leagues"`
	Discover bool                       `json:"discover"`
}

func (s *Server) handleOnboardBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid bulk request: %w", err))
			return
		}
	}

	descs := req.Leagues
	if len(descs) == 0 {
		var err error
		descs, err = s.runner.Leagues(r.Context(), req.Discover)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
	}

	if err := s.runner.StartBulk(s.base, descs, nil); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":  "started",
		"leagues": len(descs),
	})
}

func (s *Server) handleLastRun(w http.ResponseWriter, r *http.Request) {
	last := s.runner.Last()
	if last == nil {
		writeError(w, http.StatusNotFound, errors.New("no run has finished yet"))
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrRunInProgress):
		return http.StatusConflict
	case onboarding.IsFatal(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
