// Package http exposes the JSON API consumed by the mobile client.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"kharcha/internal/core"
	applog "kharcha/internal/log"
)

// ExpenseAPI is the inbound port served by this package.
type ExpenseAPI interface {
	AddFromText(ctx context.Context, text string) (core.Expense, error)
	List(ctx context.Context) ([]core.Expense, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

type Server struct {
	http.Server
	service   ExpenseAPI
	logger    *applog.Logger
	startTime time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, service ExpenseAPI, logger *applog.Logger, allowedOrigins []string) *Server {
	s := &Server{
		service:   service,
		logger:    logger.WithComponent(applog.ComponentHTTP),
		startTime: time.Now(),
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         86400,
	}))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/expenses", func(r chi.Router) {
		r.Post("/", s.handleCreateExpense)
		r.Get("/", s.handleListExpenses)
		r.Delete("/{id}", s.handleDeleteExpense)
	})
	r.Get("/health", s.handleHealth)

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	s.Server.Addr = addr
	s.Server.Handler = r

	return s
}
