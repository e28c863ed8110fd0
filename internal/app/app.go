// Package app initializes and runs the main application service.
// It configures logging, storage, authentication, and routing,
// and handles graceful shutdown.
package app

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/bookmarks/internal/auth"
	"github.com/patric-chuzhbe/bookmarks/internal/bookmarks"
	"github.com/patric-chuzhbe/bookmarks/internal/config"
	"github.com/patric-chuzhbe/bookmarks/internal/db/jsondb"
	"github.com/patric-chuzhbe/bookmarks/internal/db/memorystorage"
	"github.com/patric-chuzhbe/bookmarks/internal/db/postgresdb"
	"github.com/patric-chuzhbe/bookmarks/internal/db/storage"
	"github.com/patric-chuzhbe/bookmarks/internal/logger"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/router"
	"github.com/patric-chuzhbe/bookmarks/internal/token"
	"github.com/patric-chuzhbe/bookmarks/internal/users"
)

// App encapsulates the configuration, HTTP handler, and storage backend
// needed to run the bookmarks service.
type App struct {
	cfg         *config.Config
	db          storage.Storage
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration (a missing token signing secret aborts startup)
// - initializing logger
// - selecting and setting up storage
// - constructing the token, auth, user, and bookmark services
// - setting up the router and middleware
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = getStorageByType(app.cfg)
	if err != nil {
		return nil, err
	}

	signingSecretKey, err := base64.URLEncoding.DecodeString(app.cfg.JWTSigningSecretKey)
	if err != nil {
		return nil, err
	}

	tokens := token.New(signingSecretKey, app.cfg.TokenLifetime)
	authSvc := auth.New(app.db, tokens)

	app.httpHandler = router.New(
		app.db,
		authSvc,
		users.New(app.db),
		bookmarks.New(app.db),
		authSvc,
	)

	return app, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and cleans up resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Saving database and exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func getAvailableStorageType(cfg *config.Config) int {
	if cfg.DatabaseDSN != "" {
		return models.StorageTypePostgresql
	}

	if cfg.DBFileName != "" {
		return models.StorageTypeFile
	}

	return models.StorageTypeMemory
}

func getStorageByType(cfg *config.Config) (storage.Storage, error) {
	switch getAvailableStorageType(cfg) {
	case models.StorageTypeUnknown:
		return nil, errors.New("unknown storage type")

	case models.StorageTypePostgresql:
		return postgresdb.New(
			context.Background(),
			cfg.DatabaseDSN,
			cfg.DBConnectionTimeout,
			cfg.MigrationsDir,
		)

	case models.StorageTypeFile:
		return jsondb.New(cfg.DBFileName)
	}

	return memorystorage.New()
}
