// Package server provides the HTTP API for notegraph.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/ai"
	"github.com/hyperjump/notegraph/internal/config"
	"github.com/hyperjump/notegraph/internal/markdown"
	"github.com/hyperjump/notegraph/internal/notes"
	"github.com/hyperjump/notegraph/internal/plan"
	"github.com/hyperjump/notegraph/internal/profile"
	"github.com/hyperjump/notegraph/internal/search"
	"github.com/hyperjump/notegraph/internal/storage"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// Deps are the services the API is built on. Chat, Research and Generate
// may be nil when the matching AI service is not configured.
type Deps struct {
	Storage  storage.Storage
	Sessions *notes.Sessions
	Search   *search.Engine
	Markdown *markdown.Renderer
	Plans    *plan.Generator
	Profiles *profile.Service
	Chat     ai.Chat
	Research ai.Researcher
	Generate ai.TextGenerator
}

// Server is the HTTP server for the notegraph API.
type Server struct {
	deps      Deps
	assistant *ai.Assistant
	config    *config.Config
	logger    *zap.Logger
	guard     *aiGuard
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(deps Deps, cfg *config.Config, logger *zap.Logger) *Server {
	logger = utils.OrNop(logger)
	if deps.Markdown == nil {
		deps.Markdown = markdown.New()
	}
	if deps.Plans == nil {
		deps.Plans = plan.NewGenerator(deps.Chat, plan.WithLogger(logger))
	}
	if deps.Search == nil {
		deps.Search = search.NewEngine(nil, cfg.Search.ResultLimit, logger)
	}
	return &Server{
		deps:      deps,
		assistant: ai.NewAssistant(deps.Chat, deps.Research, deps.Generate, logger),
		config:    cfg,
		logger:    logger,
		guard:     newAIGuard(cfg.AI.RatePerSecond, cfg.AI.Burst),
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout()))
	r.Use(middleware.Compress(5, "application/json", "image/svg+xml", "text/html"))

	r.Get("/health", s.handleHealth)
	if s.deps.Profiles != nil && s.deps.Profiles.AvatarDir() != "" {
		r.Handle(profile.AvatarURLPrefix+"*", http.StripPrefix(profile.AvatarURLPrefix, http.FileServer(http.Dir(s.deps.Profiles.AvatarDir()))))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.withUser)

		r.Route("/functions", func(r chi.Router) {
			r.Use(s.withAIGuard)
			r.Post("/groq-chat", s.handleChatFunction)
			r.Post("/tavily-search", s.handleSearchFunction)
			r.Post("/huggingface-generate", s.handleGenerateFunction)
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/folders", s.handleFolders)
			r.Get("/status", s.handleStatus)
			r.Post("/session/end", s.handleEndSession)
			r.Get("/search", s.handleSearch)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", s.handleListNotes)
				r.Post("/", s.handleCreateNote)
				r.Get("/selected", s.handleSelectedNote)
				r.Get("/{id}", s.handleGetNote)
				r.Put("/{id}", s.handleUpdateNote)
				r.Delete("/{id}", s.handleDeleteNote)
				r.Get("/{id}/preview", s.handlePreviewNote)
				r.Post("/{id}/select", s.handleSelectNote)
			})

			r.Route("/graph", func(r chi.Router) {
				r.Get("/", s.handleGraph)
				r.Get("/render.svg", s.handleGraphSVG)
				r.Get("/render.png", s.handleGraphPNG)
				r.Get("/hit", s.handleGraphHit)
			})

			r.Get("/questions", s.handleQuestions)
			r.Get("/progress", s.handleListProgress)
			r.Post("/progress", s.handleMarkProgress)

			r.Route("/plans", func(r chi.Router) {
				r.Get("/dynamic", s.handleDynamicPlan)
				r.Post("/save", s.handleSavePlan)
				r.Get("/saved", s.handleSavedPlans)
				r.With(s.withAIGuard).Post("/generate", s.handleGeneratePlan)
				r.With(s.withAIGuard).Post("/weekly", s.handleWeeklyPlan)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", s.handleGetProfile)
				r.Patch("/", s.handlePatchProfile)
				r.Post("/avatar", s.handleUploadAvatar)
			})

			r.Route("/ai", func(r chi.Router) {
				r.With(s.withAIGuard).Post("/ask", s.handleAsk)
				r.Post("/notes", s.handleSaveAnswer)
			})
		})
	})
	return r
}

func (s *Server) requestTimeout() time.Duration {
	if s.config.AI.TimeoutSec > 0 {
		return time.Duration(s.config.AI.TimeoutSec)*time.Second + 5*time.Second
	}
	return 60 * time.Second
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server and closes open note sessions.
func (s *Server) Stop(ctx context.Context) error {
	if s.deps.Sessions != nil {
		defer s.deps.Sessions.CloseAll()
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
