// Package api provides the emocal API server implementation.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gamijournal/emocal/calendar"
	"github.com/gamijournal/emocal/config"
	"github.com/gamijournal/emocal/heatmap"
	"github.com/gamijournal/emocal/model"
	"github.com/gamijournal/emocal/normalize"
	"github.com/gamijournal/emocal/store"
)

// Fetcher retrieves raw emotion-log rows from the upstream habit API.
type Fetcher interface {
	FetchEmotionLogs(ctx context.Context, userID string) ([]normalize.RawRecord, error)
}

// Server is the API server.
type Server struct {
	router  *http.ServeMux
	store   store.SnapshotStore
	fetcher Fetcher
	config  *config.Config
	logger  *zap.Logger
	now     func() time.Time
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError writes an error response in JSON format.
func (s *Server) writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Error: message,
		Code:  statusCode,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode error response", zap.Error(err))
	}
}

// NewServer creates a new API server instance. A zero DefaultWeeks in
// cfg means unset and falls back to the built-in window length.
func NewServer(snapshots store.SnapshotStore, fetcher Fetcher, cfg *config.Config, logger *zap.Logger) *Server {
	if cfg.DefaultWeeks == 0 {
		cfg.DefaultWeeks = model.DefaultWindowWeeks
	}
	s := &Server{
		router:  http.NewServeMux(),
		store:   snapshots,
		fetcher: fetcher,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
	}
	s.routes()
	return s
}

// routes sets up the API endpoint routing.
func (s *Server) routes() {
	// health check is unauthenticated
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)

	securedHandler := http.NewServeMux()
	securedHandler.HandleFunc("GET /api/v0/u/{user_id}/emotions/calendar", s.handleGetCalendar)
	s.router.Handle("/api/", s.authMiddleware(securedHandler))

	// Graph endpoints - support both with and without .svg extension
	s.router.HandleFunc("GET /u/{user_id}/emotions/graph.svg", s.handleGetGraph)
	s.router.HandleFunc("GET /u/{user_id}/emotions/graph", s.handleGetGraph)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requestIDMiddleware(s.router).ServeHTTP(w, r)
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}

// handleHealthCheck handles the health check endpoint.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := map[string]string{"status": "ok"}
	json.NewEncoder(w).Encode(resp)
}

// CalendarParams represents parameters for the calendar view model.
type CalendarParams struct {
	UserID   *model.UserID
	Weeks    *model.WindowWeeks
	Lookback *model.Lookback
	Anchor   calendar.Anchor
	Trim     bool
}

// NewCalendarParams creates calendar parameters from an HTTP request.
// defaultWeeks applies when the request omits the weeks parameter.
func NewCalendarParams(r *http.Request, defaultWeeks int) (*CalendarParams, error) {
	userID, err := model.NewUserID(r.PathValue("user_id"))
	if err != nil {
		return nil, err
	}

	q := r.URL.Query()
	weeks, err := model.NewWindowWeeksWithDefault(q.Get("weeks"), defaultWeeks)
	if err != nil {
		return nil, err
	}
	lookback, err := model.NewLookback(q.Get("lookback"))
	if err != nil {
		return nil, err
	}

	anchor := calendar.AnchorTrailing
	switch q.Get("anchor") {
	case "", "trailing":
	case "earliest":
		anchor = calendar.AnchorEarliest
	default:
		return nil, fmt.Errorf("invalid anchor parameter: use \"trailing\" or \"earliest\"")
	}

	trim := false
	switch q.Get("trim") {
	case "", "0", "false":
	case "1", "true":
		trim = true
	default:
		return nil, fmt.Errorf("invalid trim parameter: use \"true\" or \"false\"")
	}

	return &CalendarParams{
		UserID:   userID,
		Weeks:    weeks,
		Lookback: lookback,
		Anchor:   anchor,
		Trim:     trim,
	}, nil
}

// CalendarResponse is the view model served to dashboard clients.
type CalendarResponse struct {
	Columns       []calendar.Column       `json:"columns"`
	MonthSegments []calendar.MonthSegment `json:"month_segments"`
	Highlight     *calendar.Highlight     `json:"highlight"`
	GeneratedAt   time.Time               `json:"generated_at"`
	Stale         bool                    `json:"stale"`
}

// handleGetCalendar serves the emotion calendar view model as JSON.
func (s *Server) handleGetCalendar(w http.ResponseWriter, r *http.Request) {
	params, err := NewCalendarParams(r, s.config.DefaultWeeks)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, stale := s.loadEntries(r.Context(), params.UserID.String())

	ref := atMidnight(s.now().In(s.config.TimezoneMode.Location()))
	grid := calendar.BuildGrid(entries, calendar.Options{
		Weeks:        params.Weeks.Int(),
		ReferenceEnd: ref,
		Anchor:       params.Anchor,
		TrimDensity:  params.Trim,
	})
	highlight := calendar.ComputeHighlight(
		model.NewEntryMap(entries),
		ref.Format(model.DateKeyLayout),
		params.Lookback.Int(),
	)

	resp := CalendarResponse{
		Columns:       grid.Columns,
		MonthSegments: grid.MonthSegments,
		Highlight:     highlight,
		GeneratedAt:   s.now().UTC(),
		Stale:         stale,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode calendar response", zap.Error(err))
	}
}

// GraphParams represents parameters for the SVG graph endpoint.
type GraphParams struct {
	UserID *model.UserID
	Weeks  *model.WindowWeeks
}

// NewGraphParams creates graph parameters from an HTTP request.
func NewGraphParams(r *http.Request, defaultWeeks int) (*GraphParams, error) {
	userID, err := model.NewUserID(r.PathValue("user_id"))
	if err != nil {
		return nil, err
	}
	weeks, err := model.NewWindowWeeksWithDefault(r.URL.Query().Get("weeks"), defaultWeeks)
	if err != nil {
		return nil, err
	}
	return &GraphParams{UserID: userID, Weeks: weeks}, nil
}

// handleGetGraph serves the emotion calendar as an SVG heatmap. The graph
// variant anchors at the earliest entry and trims dense history, matching
// the long-range timeline view of the dashboard.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	params, err := NewGraphParams(r, s.config.DefaultWeeks)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, _ := s.loadEntries(r.Context(), params.UserID.String())

	ref := atMidnight(s.now().In(s.config.TimezoneMode.Location()))
	grid := calendar.BuildGrid(entries, calendar.Options{
		Weeks:        params.Weeks.Int(),
		ReferenceEnd: ref,
		Anchor:       calendar.AnchorEarliest,
		TrimDensity:  true,
	})

	svg := heatmap.RenderSVG(grid, nil)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=300")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, svg)
}

// loadEntries fetches and normalizes the user's emotion logs, falling
// back to the last stored snapshot when the upstream is unreachable. The
// dashboard never fails for data emptiness: both sources failing yields
// an empty entry set and an all-unrecorded calendar.
func (s *Server) loadEntries(ctx context.Context, userID string) (entries []model.NormalizedEntry, stale bool) {
	reqID := requestID(ctx)

	raw, err := s.fetcher.FetchEmotionLogs(ctx, userID)
	if err == nil {
		res := normalize.Normalize(raw, s.config.TimezoneMode)
		if res.Skipped > 0 {
			s.logger.Warn("skipped unparseable rows",
				zap.String("request_id", reqID),
				zap.String("user_id", userID),
				zap.Int("skipped", res.Skipped),
				zap.Any("reasons", res.SkipReasons))
		}
		if err := s.store.SaveSnapshot(ctx, userID, res.Entries, s.now()); err != nil {
			s.logger.Error("save snapshot", zap.String("user_id", userID), zap.Error(err))
		}
		return res.Entries, false
	}

	s.logger.Warn("upstream fetch failed, falling back to snapshot",
		zap.String("request_id", reqID),
		zap.String("user_id", userID),
		zap.Error(err))

	stored, _, serr := s.store.GetSnapshot(ctx, userID)
	if serr != nil {
		if !errors.Is(serr, model.ErrSnapshotNotFound) {
			s.logger.Error("load snapshot", zap.String("user_id", userID), zap.Error(serr))
		}
		return nil, true
	}
	return stored, true
}

func atMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
