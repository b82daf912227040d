package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ZevWepster/eventpage/internal/api"
	"github.com/ZevWepster/eventpage/internal/config"
	"github.com/ZevWepster/eventpage/internal/form"
	"github.com/ZevWepster/eventpage/internal/metrics"
	"github.com/ZevWepster/eventpage/internal/notify"
	"github.com/ZevWepster/eventpage/internal/security"
	"github.com/ZevWepster/eventpage/internal/store"
)

type Application struct {
	cfg     config.Config
	gw      form.Gateway
	store   *store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(cfg config.Config, gw form.Gateway, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	var m *metrics.Metrics
	if cfg.EnableMetrics {
		m = metrics.New()
	}
	return &Application{cfg: cfg, gw: gw, store: store.New(), metrics: m, logger: logger}
}

// Store is exposed for tests and embedding callers.
func (a *Application) Store() *store.Store {
	return a.store
}

// Run populates the store and serves the local API until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	a.populate(ctx)

	server := api.New(api.Options{
		Gateway:  a.gw,
		Store:    a.store,
		Notifier: notify.LogNotifier{Log: a.logger},
		Auth: security.BearerAuth{
			Enabled: a.cfg.RequireBearerToken,
			Token:   a.cfg.BearerToken,
		},
		Metrics: a.metrics,
		Logger:  a.logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	wg := sync.WaitGroup{}

	if a.cfg.BindAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ServeTCP(ctx, a.cfg.BindAddress); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("tcp server: %w", err)
			}
		}()
	}
	if a.cfg.UnixSocketPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ServeUnix(ctx, a.cfg.UnixSocketPath); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("unix server: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		cancel()
		wg.Wait()
		return err
	case <-ctx.Done():
		wg.Wait()
		return nil
	}
}

// populate does the one-time load. A configured seed file wins; otherwise
// the three gateway collections are fetched concurrently. A failed load is
// logged and the dashboard starts empty rather than refusing to run.
func (a *Application) populate(ctx context.Context) {
	if a.cfg.SeedPath != "" {
		seed, err := store.LoadSeed(a.cfg.SeedPath)
		if err != nil {
			a.logger.Warn("seed load failed", "path", a.cfg.SeedPath, "err", err)
			return
		}
		a.store.Populate(seed)
		a.logger.Info("store seeded", "events", len(seed.Events), "categories", len(seed.Categories))
		return
	}

	var seed store.Seed
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		seed.Events, err = a.gw.ListEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		seed.Categories, err = a.gw.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		seed.Users, err = a.gw.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.logger.Warn("initial gateway load failed", "err", err)
		return
	}
	a.store.Populate(seed)
	a.logger.Info("store loaded from gateway", "events", len(seed.Events), "categories", len(seed.Categories))
}
