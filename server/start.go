package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	forumcache "forum/cache"
	"forum/config"
	"forum/database"
	"forum/handlers"
	"forum/session"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// InitLogger sets up the process-wide logger
func InitLogger() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
}

// Start runs the forum until ctx is cancelled or SIGINT/SIGTERM arrives
func Start(ctx context.Context, cfg config.Config) error {
	logger.Info("Starting forum service...", zap.String("addr", cfg.Addr))

	store, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Database.Migrations != "" {
		if err := store.Migrate(cfg.Database.Migrations); err != nil {
			return err
		}
	}

	topicCache, err := forumcache.InitializeCache(cfg.Cache)
	if err != nil {
		return err
	}
	if topicCache != nil {
		defer topicCache.Close()
	}

	sessions, err := session.NewManager(cfg.Session, store.DB())
	if err != nil {
		return err
	}

	views, err := handlers.NewRenderer()
	if err != nil {
		return err
	}

	forumHandler := handlers.NewForumHandler(store, sessions, views, topicCache)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(forumHandler, sessions),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Forum service listening", zap.String("addr", cfg.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Server failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down forum service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
