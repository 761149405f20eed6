package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"cinescout/internal/catalog"
	"cinescout/internal/chat"
	"cinescout/internal/completion"
	"cinescout/internal/config"
	"cinescout/internal/extraction"
	"cinescout/internal/logging"
	"cinescout/internal/resolve"
	"cinescout/internal/server"
	"cinescout/internal/session"
)

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			if !exists {
				logger.Info("config file not found, using defaults", logging.String("path", path))
			}

			if err := os.MkdirAll(filepath.Dir(cfg.Server.LockFile), 0o755); err != nil {
				return fmt.Errorf("create lock directory: %w", err)
			}
			lock := flock.New(cfg.Server.LockFile)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another cinescout instance is already running")
			}
			defer func() { _ = lock.Unlock() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, store, err := buildServer(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			go runSessionJanitor(ctx, store, logger)

			if err := srv.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			srv.Stop()
			logger.Info("shutdown complete")
			return nil
		},
	}
}

// buildServer wires the catalog, completion, session, and chat components
// into a ready-to-start HTTP server. The caller owns the returned session
// store.
func buildServer(cfg *config.Config, logger *slog.Logger) (*server.Server, session.Store, error) {
	client, err := catalog.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		catalog.WithTimeout(time.Duration(cfg.TMDB.TimeoutSeconds)*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("catalog client: %w", err)
	}
	lookup := catalog.NewLookup(client, catalog.LookupConfig{
		Pace:          time.Duration(cfg.TMDB.PaceMillis) * time.Millisecond,
		RetryAttempts: cfg.TMDB.RetryAttempts,
		RetryDelay:    time.Duration(cfg.TMDB.RetryDelaySecs) * time.Second,
		MaxResults:    cfg.TMDB.MaxResults,
	}, catalog.WithLogger(logger))

	comp := completion.NewClient(completion.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})

	store, err := openSessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	images := resolve.Images{
		BaseURL:        cfg.TMDB.ImageBaseURL,
		PlaceholderURL: cfg.TMDB.PlaceholderURL,
	}
	resolver := resolve.NewResolver(lookup, images, logger)
	recommender := resolve.NewRecommender(lookup, images, logger)
	chatSvc := chat.NewService(comp, extraction.ForMode(cfg.Chat.Parser), resolver, lookup, store, images, logger)

	return server.New(cfg.Server.Bind, chatSvc, recommender, lookup, images, logger), store, nil
}

const janitorInterval = 5 * time.Minute

// runSessionJanitor periodically evicts expired sessions until ctx ends.
func runSessionJanitor(ctx context.Context, store session.Store, logger *slog.Logger) {
	sweeper, ok := store.(session.Sweeper)
	if !ok {
		return
	}
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sweeper.Sweep(ctx)
			if err != nil {
				logger.Warn("session sweep failed", logging.Error(err))
				continue
			}
			if removed > 0 {
				logger.Debug("session sweep", logging.Int64("removed", removed))
			}
		}
	}
}

func openSessionStore(cfg *config.Config) (session.Store, error) {
	ttl := time.Duration(cfg.Sessions.TTLMinutes) * time.Minute
	switch cfg.Sessions.Backend {
	case "sqlite":
		store, err := session.OpenSQLite(cfg.Sessions.Path, ttl, cfg.Sessions.MaxTurns)
		if err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
		return store, nil
	default:
		return session.NewMemoryStore(ttl, cfg.Sessions.MaxTurns), nil
	}
}
