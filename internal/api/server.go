// Package api provides HTTP routing for the recommendation service.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TiberiuRabi/LLM-Library/internal/service"
)

// RecommendService is the api-facing subset of the recommender.
type RecommendService interface {
	Recommend(ctx context.Context, query string, k int) (*service.Recommendation, error)
}

// Server wires handlers, validation and logging for the HTTP API.
type Server struct {
	svc      RecommendService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewServer creates the HTTP server layer.
func NewServer(svc RecommendService, log zerolog.Logger) *Server {
	return &Server{
		svc:      svc,
		validate: validator.New(),
		log:      log,
	}
}

// Routes builds the router with the global middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/recommend", s.handleRecommend)

	return r
}
