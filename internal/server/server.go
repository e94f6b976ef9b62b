// Package server exposes the upload-and-publish pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abdulachik/fanpost/internal/app"
)

// Server wires the application into an HTTP router.
type Server struct {
	app *app.App
}

// New creates a server for the given application.
func New(a *app.App) *Server {
	return &Server{app: a}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/auth", s.handleAuth)
	r.Post("/posts", s.handleCreatePost)
	r.Get("/posts", s.handleHistory)
	r.Post("/captions", s.handleCaption)
	r.Post("/plans", s.handleCreatePlan)
	r.Get("/plans/latest", s.handleLatestPlan)

	return r
}
