package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ytharvest/internal/config"
	"ytharvest/internal/logging"
	"ytharvest/internal/warehouse"
)

// Server exposes the warehouse over a small JSON API for dashboards.
type Server struct {
	bind   string
	store  *warehouse.Store
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
}

// NewServer builds the dashboard API server. It returns nil when no bind
// address is configured.
func NewServer(cfg *config.Config, store *warehouse.Store, logger *slog.Logger) *Server {
	if cfg == nil || store == nil {
		return nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil
	}

	srv := &Server{
		bind:   bind,
		store:  store,
		logger: logging.NewComponentLogger(logger, "api-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/stats", srv.handleStats)
	mux.HandleFunc("/api/channels", srv.handleChannels)
	mux.HandleFunc("/api/queries", srv.handleQueries)
	mux.HandleFunc("/api/query/", srv.handleQuery)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Start begins serving requests until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	health, err := s.store.CheckHealth(r.Context())
	payload := HealthResponse{
		Healthy:        err == nil && health.DatabaseReadable && len(health.MissingTables) == 0 && health.IntegrityCheck,
		DatabasePath:   health.DBPath,
		DatabaseExists: health.DatabaseExists,
		TablesPresent:  health.TablesPresent,
		MissingTables:  health.MissingTables,
		IntegrityCheck: health.IntegrityCheck,
		TotalRows:      health.TotalRows,
		Error:          health.Error,
	}
	if err != nil && payload.Error == "" {
		payload.Error = err.Error()
	}
	status := http.StatusOK
	if !payload.Healthy {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, payload)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, StatsResponse{
		Channels:         stats.Channels,
		Videos:           stats.Videos,
		Comments:         stats.Comments,
		PendingSnapshots: stats.PendingSnapshots,
		FailedSnapshots:  stats.FailedSnapshots,
	})
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	channels, err := s.store.Channels(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]ChannelView, 0, len(channels))
	for _, ch := range channels {
		views = append(views, ChannelView{
			ID:          ch.ID,
			Title:       ch.Title,
			Subscribers: ch.Subscribers,
			TotalVideos: ch.TotalVideos,
			HarvestedAt: ch.HarvestedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, ChannelListResponse{Channels: views})
}

func (s *Server) handleQueries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	queries := warehouse.Queries()
	views := make([]QueryView, 0, len(queries))
	for _, q := range queries {
		views = append(views, QueryView{Name: q.Name, Title: q.Title, NeedsYear: q.NeedsYear})
	}
	s.writeJSON(w, http.StatusOK, QueryListResponse{Queries: views})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/query/")
	if name == "" || strings.Contains(name, "/") {
		s.writeError(w, http.StatusNotFound, "unknown analysis query")
		return
	}
	if _, ok := warehouse.QueryByName(name); !ok {
		s.writeError(w, http.StatusNotFound, "unknown analysis query")
		return
	}

	filter := warehouse.Filter{ChannelID: strings.TrimSpace(r.URL.Query().Get("channel"))}
	if yearValue := strings.TrimSpace(r.URL.Query().Get("year")); yearValue != "" {
		year, err := strconv.Atoi(yearValue)
		if err != nil || year <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		filter.Year = year
	}

	result, err := s.store.RunAnalysis(r.Context(), name, filter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, QueryResultResponse{
		Name:    result.Query.Name,
		Title:   result.Query.Title,
		Columns: result.Columns,
		Rows:    result.Rows,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
