// Package http exposes Varion over a JSON API: stateless parse/validate
// endpoints for authoring tools, plus session endpoints that play a loaded
// script. Sessions persist through the configured SessionStore, so the
// server itself stays stateless.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/varion"
	"github.com/aretw0/varion/internal/logging"
	"github.com/aretw0/varion/internal/presentation/graph"
	"github.com/aretw0/varion/internal/runtime"
	"github.com/aretw0/varion/pkg/script"
)

// ParseFunc turns raw script text into a validated graph. Injected so the
// adapter does not depend on the root facade package.
type ParseFunc func(source string) (*script.Graph, error)

// Server wires the engine, the parse pipeline and the HTTP surface.
type Server struct {
	engine *runtime.Engine
	parse  ParseFunc
	logger *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithEngine attaches a playback engine; without one, only the stateless
// parse/validate endpoints are mounted.
func WithEngine(engine *runtime.Engine) Option {
	return func(s *Server) { s.engine = engine }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler builds the chi router for the given parse pipeline.
func NewHandler(parse ParseFunc, opts ...Option) http.Handler {
	s := &Server{
		parse:  parse,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.handleHealth)
	r.Get("/info", s.handleInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/parse", s.handleParse)
	r.Post("/validate", s.handleValidate)

	if s.engine != nil {
		r.Get("/graph", s.handleGraph)
		r.Get("/graph/mermaid", s.handleMermaid)
		r.Get("/nodes/{id}", s.handleNode)

		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/{id}", s.handleRenderSession)
		r.Post("/sessions/{id}/choose", s.handleChoose)
		r.Post("/sessions/{id}/advance", s.handleAdvance)
		r.Delete("/sessions/{id}", s.handleEndSession)
	}

	return r
}

type parseRequest struct {
	Source string `json:"source"`
}

type graphResponse struct {
	Entry string         `json:"entry"`
	Nodes []*script.Node `json:"nodes"`
}

type errorResponse struct {
	Errors []*script.Error `json:"errors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "varion-http",
		"version": varion.Version,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	g, ok := s.parseBody(w, r, "parse")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{Entry: g.Entry(), Nodes: g.Nodes()})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	_, err := s.parse(req.Source)
	if err != nil {
		observeParse("validate", "invalid")
		if list, ok := script.AsErrorList(err); ok {
			writeJSON(w, http.StatusOK, map[string]any{"valid": false, "errors": list.Errors})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	observeParse("validate", "ok")
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g := s.engine.Graph()
	writeJSON(w, http.StatusOK, graphResponse{Entry: g.Entry(), Nodes: g.Nodes()})
}

func (s *Server) handleMermaid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(s.engine.Graph())))
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	node := s.engine.Graph().Get(chi.URLParam(r, "id"))
	if node == nil {
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

type startSessionRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	state, err := s.engine.Start(r.Context(), req.SessionID)
	if err != nil {
		s.logger.Error("failed to start session", "error", err, "session", req.SessionID)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.renderState(w, r, state)
}

func (s *Server) handleRenderSession(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.renderState(w, r, state)
}

type chooseRequest struct {
	Index int `json:"index"`
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req chooseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	next, err := s.engine.Choose(r.Context(), state, req.Index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.renderState(w, r, next)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	next, err := s.engine.Advance(r.Context(), state)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.renderState(w, r, next)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sessionResponse struct {
	State *script.State `json:"state"`
	View  *runtime.View `json:"view"`
}

func (s *Server) renderState(w http.ResponseWriter, r *http.Request, state *script.State) {
	view, err := s.engine.Render(r.Context(), state)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{State: state, View: view})
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*script.State, bool) {
	state, err := s.engine.Resume(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, script.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return state, true
}

// parseBody decodes the request, runs the pipeline and writes the error set
// (422) when the script is invalid.
func (s *Server) parseBody(w http.ResponseWriter, r *http.Request, endpoint string) (*script.Graph, bool) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return nil, false
	}

	g, err := s.parse(req.Source)
	if err != nil {
		observeParse(endpoint, "invalid")
		if list, ok := script.AsErrorList(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Errors: list.Errors})
			return nil, false
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	observeParse(endpoint, "ok")
	return g, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
