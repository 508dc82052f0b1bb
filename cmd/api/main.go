package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lvxn0va/legal-ease-ai/internal/config"
	"github.com/lvxn0va/legal-ease-ai/internal/database"
	"github.com/lvxn0va/legal-ease-ai/internal/extraction"
	"github.com/lvxn0va/legal-ease-ai/internal/handler"
	"github.com/lvxn0va/legal-ease-ai/internal/logger"
	"github.com/lvxn0va/legal-ease-ai/internal/middleware"
	"github.com/lvxn0va/legal-ease-ai/internal/pipeline"
	"github.com/lvxn0va/legal-ease-ai/internal/repository"
	"github.com/lvxn0va/legal-ease-ai/internal/server"
	"github.com/lvxn0va/legal-ease-ai/internal/services"
	"github.com/lvxn0va/legal-ease-ai/internal/storage"
)

func main() {
	logger.Init("legal-ease-api")
	log := logger.Logger

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := database.Connect(ctx, cfg.DatabaseUrl, database.DefaultConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DatabaseUrl); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	store, err := storage.NewStorage(ctx, &storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to object storage")
	}

	userRepo := repository.NewUserRepository(db.Pool)
	documentRepo := repository.NewDocumentRepository(db.Pool)

	sequencer := pipeline.NewSequencer(
		documentRepo,
		store,
		extraction.NewRegistry(),
		extraction.NewTermExtractor(),
		extraction.NewSummarizer(),
		log,
	)
	worker := pipeline.NewWorker(pipeline.NewQueue(), sequencer, documentRepo, log, pipeline.Options{
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
		DequeueTimeout: cfg.DequeueTimeout,
	})
	worker.Start()

	jwtService := services.NewJWTService(cfg)
	hashingService := services.NewHashingService()
	authService := services.NewAuthService(userRepo, hashingService, jwtService)
	documentService := services.NewDocumentService(documentRepo, store, worker)

	authHandler := handler.NewAuthHandler(authService)
	documentHandler := handler.NewDocumentHandler(documentService)
	healthHandler := handler.NewHealthHandler(db, worker)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	g := server.NewServer(authHandler, documentHandler, healthHandler, authMiddleware)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: g,
	}

	go func() {
		log.Info().Str("addr", cfg.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}

	// In-flight documents finish before we let go of the process.
	worker.Stop()
	log.Info().Msg("Shutdown complete")
}
