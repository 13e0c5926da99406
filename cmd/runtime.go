package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/tsconv/internal/cachemanager"
	"github.com/zjrosen/tsconv/internal/config"
	"github.com/zjrosen/tsconv/internal/extension"
	"github.com/zjrosen/tsconv/internal/flags"
	"github.com/zjrosen/tsconv/internal/history"
	"github.com/zjrosen/tsconv/internal/infrastructure/sqlite"
	"github.com/zjrosen/tsconv/internal/log"
	"github.com/zjrosen/tsconv/internal/timestamp"
	"github.com/zjrosen/tsconv/internal/tracing"
)

// runtime holds the services shared by the TUI and the subcommands.
type runtime struct {
	cfg    config.Config
	db     *sqlite.DB // nil for memory-only history
	store  *history.Store
	tracer *tracing.Provider
	cache  *cachemanager.InMemoryCacheManager[string, timestamp.Candidate]
	flags  *flags.Registry
}

// openRuntime opens the history database named by cfg and builds the
// tracer and extraction cache.
func openRuntime(cfg config.Config) (*runtime, error) {
	rt := &runtime{cfg: cfg, flags: flags.New(cfg.Flags)}

	var storage history.Storage
	if cfg.History.Path == "" {
		log.Info(log.CatHistory, "Keeping history in memory")
		storage = history.NewMemoryStorage()
	} else {
		db, err := sqlite.NewDB(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		rt.db = db
		storage = db.KV()
	}
	rt.store = history.NewStore(storage, history.WithLimit(cfg.History.Limit))

	tracer, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		log.ErrorErr(log.CatTrace, "Tracing disabled", err)
		tracer = tracing.Noop()
	}
	rt.tracer = tracer

	if cfg.Cache.TTL > 0 {
		rt.cache = cachemanager.NewInMemoryCacheManager[string, timestamp.Candidate](
			"extract", cfg.Cache.TTL, cachemanager.DefaultCleanupInterval)
	}
	return rt, nil
}

// Pipeline builds a conversion pipeline presenting through presenter.
// opts are applied after the configured defaults.
func (rt *runtime) Pipeline(presenter extension.Presenter, opts ...extension.PipelineOption) *extension.Pipeline {
	base := []extension.PipelineOption{
		extension.WithFlags(rt.flags),
		extension.WithTracer(rt.tracer.Tracer()),
		extension.WithDurations(rt.cfg.Toast.ResultDuration, rt.cfg.Toast.Duration),
	}
	if rt.cache != nil {
		base = append(base, extension.WithExtractCache(rt.cache, rt.cfg.Cache.TTL))
	}
	return extension.NewPipeline(presenter, rt.store, append(base, opts...)...)
}

// Close flushes spans and closes the store and database.
func (rt *runtime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if err := rt.tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing traces: %w", err))
	}
	rt.store.Close()
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing history: %w", err))
		}
	}
	return errors.Join(errs...)
}
