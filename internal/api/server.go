// Package api exposes the quiz flow over HTTP for browser frontends.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/yclai/readquest/internal/grading"
	"github.com/yclai/readquest/internal/quizgen"
	"github.com/yclai/readquest/internal/record"
	"github.com/yclai/readquest/internal/session"
	"github.com/yclai/readquest/internal/store"
)

// Options carries the server dependencies.
type Options struct {
	Logger    *zap.Logger
	Generator quizgen.Generator
	Engine    *grading.Engine
	Story     string
	Sink      record.Sink
	Events    store.EventRepo

	// ReportSecret gates GET /api/report. Empty disables the endpoint.
	ReportSecret string

	// AllowedOrigins configures CORS for browser frontends.
	AllowedOrigins []string
}

// Server hosts the session registry and the HTTP handlers.
type Server struct {
	log    *zap.Logger
	gen    quizgen.Generator
	engine *grading.Engine
	story  string
	sink   record.Sink
	events store.EventRepo

	reportSecret   string
	allowedOrigins []string

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// sessionEntry serializes access to one session. The registry lock is
// only held for lookup; per-session work holds the entry lock.
type sessionEntry struct {
	mu sync.Mutex
	s  *session.Session
}

// NewServer builds a Server from its dependencies.
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log:            log,
		gen:            opts.Generator,
		engine:         opts.Engine,
		story:          opts.Story,
		sink:           opts.Sink,
		events:         opts.Events,
		reportSecret:   opts.ReportSecret,
		allowedOrigins: opts.AllowedOrigins,
		sessions:       make(map[string]*sessionEntry),
	}
}

// Router assembles the chi router with middleware and all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(s.requestLogger)

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/level", s.handleSelectLevel)
			r.Post("/start", s.handleStart)
			r.Post("/answers", s.handleAnswer)
			r.Post("/reset", s.handleReset)
		})
		r.Get("/report", s.handleReport)
	})

	return r
}

// requestLogger logs one line per request through zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// lookup returns the entry for a session ID, or nil.
func (s *Server) lookup(id string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// register stores a new session in the registry.
func (s *Server) register(sess *session.Session) *sessionEntry {
	entry := &sessionEntry{s: sess}
	s.mu.Lock()
	s.sessions[sess.ID] = entry
	s.mu.Unlock()
	return entry
}
