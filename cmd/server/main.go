package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aiblog/backend/internal/config"
	"aiblog/backend/internal/httpserver"
	"aiblog/backend/internal/infrastructure/gemini"
	"aiblog/backend/internal/infrastructure/postgres"
	"aiblog/backend/internal/infrastructure/token"
	"aiblog/backend/internal/infrastructure/unsplash"
	authusecase "aiblog/backend/internal/usecase/auth"
	blogusecase "aiblog/backend/internal/usecase/blog"
	ticketusecase "aiblog/backend/internal/usecase/ticket"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL, cfg.JWTIssuer)
	userRepo := postgres.NewUserRepository(db.Pool)

	authService := authusecase.NewService(userRepo, tokenManager, log)
	blogService := blogusecase.NewService(postgres.NewBlogRepository(db.Pool), log)
	ticketService := ticketusecase.NewService(postgres.NewTicketRepository(db.Pool), userRepo, log)

	server := httpserver.NewServer(cfg, authService, blogService, ticketService,
		gemini.NewClient(cfg.GeminiAPIKey), unsplash.NewClient(cfg.UnsplashKey), log)
	log.Info("HTTP server listening", "addr", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("HTTP server closed")
				return
			}
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	} else {
		log.Info("graceful shutdown completed")
	}
}
