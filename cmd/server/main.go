package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"transcriptfolder/internal/auth"
	"transcriptfolder/internal/config"
	fm "transcriptfolder/internal/domain/models/filemanager"
	"transcriptfolder/internal/handler"
	"transcriptfolder/internal/handler/sse"
	"transcriptfolder/internal/middleware"
	"transcriptfolder/internal/seed"
	"transcriptfolder/internal/service/filemanager"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging, optionally teed to a rotated log file
	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}
	logger := config.NewLogger(cfg, logOut)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"locale", cfg.Locale,
	)

	// Load the starting dataset
	ds, err := loadDataset(cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	logger.Info("dataset loaded",
		"teams", len(ds.Teams),
		"users", len(ds.Users),
		"items", len(ds.Items),
		"source", datasetSource(cfg),
	)

	// Identity: JWKS-verified bearer tokens, or a fixed dev actor
	var resolver auth.ActorResolver
	if cfg.JWKSURL != "" {
		verifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()

		resolver = auth.NewBearerResolver(verifier, func(id string) (string, bool) {
			user, ok := ds.User(id)
			return user.Name, ok
		})
	} else {
		if cfg.Environment == "prod" {
			log.Fatalf("JWKS_URL is required in production")
		}
		resolver = auth.StaticResolver{Actor: fm.Actor{ID: cfg.DevActorID, Name: cfg.DevActorName}}
		logger.Warn("DEV MODE: every request acts as the dev actor", "actor_id", cfg.DevActorID)
	}

	// Sessions: one file manager per actor
	registry := filemanager.NewRegistry(cfg.SessionCacheSize, cfg.SessionTTL, ds.ItemsFor, filemanager.SessionDeps{
		IDs:      filemanager.UUIDGenerator{},
		Clock:    filemanager.SystemClock{},
		Teams:    ds.Catalog(),
		Notifier: filemanager.NewLogNotifier(logger),
		Locale:   cfg.Locale,
		MaxDepth: config.MaxAncestorDepth,
		Logger:   logger,
	})
	defer registry.Purge()

	fileManagerHandler := handler.NewFileManagerHandler(registry, logger)
	eventsHandler := handler.NewEventsHandler(fileManagerHandler, sse.DefaultConfig(), logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, fileManagerHandler, eventsHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Build middleware chain
	// Order: CORS → Auth → Recovery → RequestLogger → Metrics → Routes
	// Auth goes first so the inner layers can log the actor; Metrics sits
	// right on the mux so the matched pattern is visible to it.
	var h http.Handler = mux
	h = middleware.Metrics()(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Authenticate(resolver, logger, "/health", "/metrics")(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Closing sessions ends open event streams so Shutdown can finish
		registry.Purge()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	<-shutdownDone
}

func loadDataset(cfg *config.Config) (*seed.Dataset, error) {
	if cfg.SeedFile != "" {
		return seed.LoadFile(cfg.SeedFile)
	}
	return seed.Default()
}

func datasetSource(cfg *config.Config) string {
	if cfg.SeedFile != "" {
		return cfg.SeedFile
	}
	return "embedded"
}
