package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"aiblog/backend/internal/config"
	"aiblog/backend/internal/infrastructure/gemini"
	"aiblog/backend/internal/infrastructure/unsplash"
	authusecase "aiblog/backend/internal/usecase/auth"
	blogusecase "aiblog/backend/internal/usecase/blog"
	ticketusecase "aiblog/backend/internal/usecase/ticket"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer     *http.Server
	router         *http.ServeMux
	authService    *authusecase.Service
	blogService    *blogusecase.Service
	ticketService  *ticketusecase.Service
	gemini         *gemini.Client
	unsplash       *unsplash.Client
	log            *slog.Logger
	allowedOrigins []string
	secureCookies  bool
	sessionTTL     time.Duration
	addr           string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(
	cfg config.Config,
	authService *authusecase.Service,
	blogService *blogusecase.Service,
	ticketService *ticketusecase.Service,
	geminiClient *gemini.Client,
	unsplashClient *unsplash.Client,
	log *slog.Logger,
) *Server {
	mux := http.NewServeMux()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	srv := &Server{
		router:         mux,
		authService:    authService,
		blogService:    blogService,
		ticketService:  ticketService,
		gemini:         geminiClient,
		unsplash:       unsplashClient,
		log:            log,
		allowedOrigins: cfg.AllowedOrigins,
		secureCookies:  cfg.IsProduction(),
		sessionTTL:     cfg.SessionTTL,
		addr:           addr,
	}
	srv.httpServer = &http.Server{
		Addr:         addr,
		Handler:      srv.withLogging(withCORS(mux, cfg.AllowedOrigins)),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
