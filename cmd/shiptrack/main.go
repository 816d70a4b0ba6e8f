package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shiptrack/infrastructure/audit"
	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/config"
	"shiptrack/infrastructure/feed"
	httpserver "shiptrack/infrastructure/http"
	"shiptrack/infrastructure/rbac"
	"shiptrack/infrastructure/sqlite"
)

const sessionPruneInterval = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("shiptrack exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return err
	}

	db, err := sqlite.OpenDB(cfg.Data.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		return err
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	rbacCache := cache.NewRbacRolesCache()
	snapshot := cache.NewSnapshotCache()

	refresher := feed.NewRefresher(feed.NewHTTPSource(cfg.Feed.URL, timeout), feed.NewStore(db), snapshot)
	if err := refresher.Restore(ctx); err != nil {
		slog.Warn("restore snapshot failed; starting empty", slog.Any("err", err))
	}

	server := httpserver.NewServer(cfg.Server.Addr, httpserver.Deps{
		DB:           db,
		Snapshot:     snapshot,
		Refresher:    refresher,
		FeedURL:      cfg.Feed.URL,
		SessionCache: sessionCache,
		UserCache:    userCache,
		RbacCache:    rbacCache,
		Rbac:         rbac.New(rbacCache),
		Audit:        audit.NewService(),
	})
	if err := server.Start(); err != nil {
		return err
	}
	slog.Info("shiptrack listening", slog.String("addr", server.ListenAddr()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(sessionPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := sessionCache.PruneExpired(); n > 0 {
					slog.Debug("pruned expired sessions", slog.Int("count", n))
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop()
	})

	return g.Wait()
}
