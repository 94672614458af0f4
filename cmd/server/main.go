package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"microblog/internal/dbmysql"
	"microblog/internal/di"
	"microblog/internal/logger"
)

// orphanSweepInterval paces the background cleanup of media rows no
// tweet references anymore.
const orphanSweepInterval = time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	app, cleanup, err := di.InitializeApp()
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	logger.InitFromConfig(app.Config)

	if err := dbmysql.Migrate(app.DB); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrated")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Cache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, like counts served from SQL only", "error", err)
	}

	go sweepOrphans(ctx, app)

	addr := net.JoinHostPort(app.Config.Server.Host, app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.Server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("stopped")
}

// sweepOrphans periodically reclaims media left behind by interrupted
// uploads or tweet deletions under the independent ownership policy.
func sweepOrphans(ctx context.Context, app *di.App) {
	ticker := time.NewTicker(orphanSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := app.Media.ReconcileOrphans(ctx, 24*time.Hour); err != nil {
				logger.Warn("orphan sweep failed", "error", err)
			}
		}
	}
}
