package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/config"
	"locallibrary/internal/database"
	"locallibrary/internal/database/authors"
	"locallibrary/internal/database/books"
	"locallibrary/internal/database/genres"
	"locallibrary/internal/database/instances"
	http_controllers "locallibrary/internal/http"
	"locallibrary/internal/jobs"
	"locallibrary/internal/sessions"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Local Library v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	authorRepo := authors.NewRepository(db.DB)
	genreRepo := genres.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	instanceRepo := instances.NewRepository(db.DB)

	// Sessions share the catalog's sqlite database
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := sessions.NewManager(sqlDB, cfg.Session.Lifetime, cfg.Session.SecureCookies)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// Use the configured CSRF secret, or generate one per process
	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = sessions.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	}
	csrfSecret, err := hex.DecodeString(secret)
	if err != nil {
		// Not hex, use as raw bytes
		csrfSecret = []byte(secret)
	}

	var reporter *jobs.OverdueReporter
	if cfg.Overdue.Enabled {
		reporter, err = jobs.NewOverdueReporter(instanceRepo, cfg.Overdue.Schedule)
		if err != nil {
			log.Fatalf("Failed to schedule overdue report: %v", err)
		}
		reporter.Start()
		log.Printf("Overdue report scheduled: %s", cfg.Overdue.Schedule)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Authors:       authorRepo,
		Genres:        genreRepo,
		Books:         bookRepo,
		Instances:     instanceRepo,
		Sessions:      sessionManager,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Session.SecureCookies,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
	})

	onShutdown := func(ctx context.Context) {
		if reporter != nil {
			reporter.Stop(ctx)
		}
	}

	Serve(router, cfg, onShutdown)
}
