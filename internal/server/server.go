// Package server exposes the documentation assistant over HTTP: spec
// upload, summary, structured section data, search, and chat.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/chat"
	"github.com/specdoc/specdoc/internal/store"
	"github.com/specdoc/specdoc/internal/summary"
	"github.com/specdoc/specdoc/internal/vectordb"
)

// Config holds server configuration.
type Config struct {
	Port            int
	AllowAll        bool // allow all CORS origins (dev mode)
	ExamplesDir     string
	ExamplesInclude []string
	ExamplesExclude []string
	SearchLimit     int
	SearchThreshold float64
}

// Server is the specdoc HTTP server. The current spec and its summary
// document live behind a RWMutex; a new upload replaces both wholesale,
// so the latest upload always wins.
type Server struct {
	cfg        Config
	db         *store.Store
	vectors    vectordb.Store // nil disables semantic search
	bot        *chat.Bot
	router     chi.Router
	httpServer *http.Server

	mu         sync.RWMutex
	spec       *apispec.Spec
	summaryDoc string
}

// New creates a server with its dependencies. vectors may be nil.
func New(cfg Config, db *store.Store, vectors vectordb.Store, bot *chat.Bot) *Server {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 10
	}
	if bot == nil {
		bot = chat.NewBot(nil)
	}
	s := &Server{cfg: cfg, db: db, vectors: vectors, bot: bot}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/upload-spec", s.handleUploadSpec)
	r.Get("/api-summary", s.handleAPISummary)
	r.Get("/get-spec", s.handleGetSpec)
	r.Get("/summarize-json", s.handleSummarizeJSON)
	r.Get("/search", s.handleSearch)
	r.Post("/ask", s.handleAsk)
	r.Get("/docs", s.handleDocsPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/docs-data", s.handleDocsData)
		r.Get("/examples", s.handleListExamples)
		r.Get("/examples/*", s.handleGetExample)
		r.Get("/specs", s.handleListSpecs)
		r.Get("/chat/ws", s.handleChatWS)
	})
	r.Post("/chat", s.handleChat)

	return r
}

// Router returns the chi router, exposed for tests.
func (s *Server) Router() chi.Router { return s.router }

// SetSpec installs a new current spec, rebuilds the summary document,
// and reindexes the vector store when one is configured.
func (s *Server) SetSpec(ctx context.Context, spec *apispec.Spec) {
	doc := summary.Build(spec)

	s.mu.Lock()
	s.spec = spec
	s.summaryDoc = doc
	s.mu.Unlock()

	if s.vectors != nil {
		if err := s.vectors.Add(ctx, vectordb.EndpointDocuments(spec)); err != nil {
			log.Printf("server: vector indexing failed: %v", err)
		}
	}
}

// current returns the loaded spec and its summary, or ok=false.
func (s *Server) current() (*apispec.Spec, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spec, s.summaryDoc, s.spec != nil
}

// RestoreLatest loads the most recent persisted spec, if any, so a
// restart does not lose the current document.
func (s *Server) RestoreLatest(ctx context.Context) error {
	rec, err := s.db.LatestSpec(ctx)
	if errors.Is(err, store.ErrNoSpec) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading latest spec: %w", err)
	}

	var spec apispec.Spec
	if err := json.Unmarshal([]byte(rec.Normalized), &spec); err != nil {
		return fmt.Errorf("decoding stored spec %s: %w", rec.ID, err)
	}
	s.SetSpec(ctx, &spec)
	log.Printf("server: restored spec %q (%d paths)", rec.Title, rec.PathCount)
	return nil
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("specdoc server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
