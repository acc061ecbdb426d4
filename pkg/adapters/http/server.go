package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodySize bounds POST /commands bodies.
const MaxBodySize = 1 << 20

// Engine is the part of turtle.Engine the HTTP adapter needs.
type Engine interface {
	Execute(ctx context.Context, raw string) ([]domain.Transition, error)
	Position() domain.Position
	Placed() bool
	Bounds() domain.Bounds
}

// Server serves the turtle over HTTP.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithStreams exposes GET /events backed by sm. The same manager must be
// registered as lifecycle hooks on the engine for events to flow.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.Logger = l
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Post("/commands", s.PostCommands)
	r.Get("/position", s.GetPosition)
	r.Get("/report", s.GetReport)
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CommandsRequest is the JSON body of POST /commands.
type CommandsRequest struct {
	Commands []string `json:"commands"`
}

// CommandsResponse is returned by POST /commands.
type CommandsResponse struct {
	Transitions []domain.Transition `json:"transitions"`
	Reports     []string            `json:"reports"`
	Errors      []string            `json:"errors,omitempty"`
	Position    PositionResponse    `json:"position"`
}

// PositionResponse describes the agent.
type PositionResponse struct {
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Facing domain.Facing `json:"facing"`
	Placed bool          `json:"placed"`
}

// PostCommands handles POST /commands. The body is either text/plain with one
// command per line or JSON {"commands": [...]}.
func (s *Server) PostCommands(w http.ResponseWriter, r *http.Request) {
	lines, err := readCommands(r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.Logger.Warn("PostCommands: invalid body", "error", err)
		return
	}

	resp := CommandsResponse{
		Transitions: []domain.Transition{},
		Reports:     []string{},
	}
	for _, line := range lines {
		clean, err := runner.SanitizeInput(line)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
			s.Logger.Warn("PostCommands: input rejected", "error", err, "size", len(line))
			return
		}

		transitions, err := s.Engine.Execute(r.Context(), clean)
		if err != nil {
			if len(transitions) == 0 && len(turtle.ParseErrors(err)) == 0 {
				http.Error(w, fmt.Sprintf("Execute error: %v", err), http.StatusUnprocessableEntity)
				s.Logger.Error("PostCommands: execute failed", "input", clean, "error", err)
				return
			}
			resp.Errors = append(resp.Errors, errorLines(err)...)
		}
		for _, t := range transitions {
			if t.Report != "" {
				resp.Reports = append(resp.Reports, t.Report)
			}
		}
		resp.Transitions = append(resp.Transitions, transitions...)
	}
	resp.Position = s.position()

	writeJSON(w, s.Logger, resp)
}

func readCommands(body io.Reader, contentType string) ([]string, error) {
	body = io.LimitReader(body, MaxBodySize)
	mediaType, _, _ := mime.ParseMediaType(contentType)

	if mediaType == "application/json" {
		var req CommandsRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			return nil, err
		}
		return req.Commands, nil
	}

	var lines []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func errorLines(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, inner := range joined.Unwrap() {
			out = append(out, errorLines(inner)...)
		}
		return out
	}
	if err == nil {
		return nil
	}
	return []string{err.Error()}
}

// GetPosition handles GET /position.
func (s *Server) GetPosition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, s.position())
}

// GetReport handles GET /report: the report line as text, or 204 before placement.
// It reads the position without issuing a REPORT command.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	if !s.Engine.Placed() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, s.Engine.Position().String())
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	b := s.Engine.Bounds()
	writeJSON(w, s.Logger, map[string]any{
		"app":     "turtle-http",
		"version": turtle.Version,
		"bounds":  b,
	})
}

func (s *Server) position() PositionResponse {
	p := s.Engine.Position()
	return PositionResponse{
		X:      p.Coordinate.X,
		Y:      p.Coordinate.Y,
		Facing: p.Facing,
		Placed: s.Engine.Placed(),
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("response encode failed", "error", err)
	}
}
