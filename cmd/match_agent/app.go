package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/cache"
	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/events"
	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
)

// app holds the connections shared by the commands. Cache and NATS are nil when their
// addresses are not configured.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *db.DB
	cache    *cache.Redis
	nc       *nats.Conn
	shutdown func(context.Context)
}

// loadConfig reads configuration and applies the --debug/--json flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logDebug {
		cfg.Log.Debug = true
	}
	if logJSON {
		cfg.Log.JSON = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp connects to everything the configuration names. The database is required.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, shutdown: func(context.Context) {}}

	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		CollectorURL: cfg.Tracing.CollectorURL,
		SampleRatio:  cfg.Tracing.SampleRatio,
	}, logger)
	if err != nil {
		return nil, err
	}
	a.shutdown = shutdown

	a.db, err = db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Redis.Addr != "" {
		a.cache = cache.New(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err := a.cache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
			_ = a.cache.Close()
			a.cache = nil
		}
	}

	if cfg.NATS.URL != "" {
		a.nc, err = events.Connect(cfg.NATS.URL, "match_agent")
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
	}

	return a, nil
}

// matcher builds a Matcher over the app's stores
func (a *app) matcher() *matching.Matcher {
	cfg := matching.Config{
		Jobs:    a.db,
		Resumes: a.db,
		Logger:  a.logger,
		Workers: a.cfg.Matching.Workers,
	}
	if a.cache != nil {
		cfg.Cache = a.cache
	}
	if a.nc != nil {
		cfg.Publisher = events.NewPublisher(a.nc, a.cfg.NATS.MatchesSubject, a.logger)
	}
	return matching.NewMatcher(cfg)
}

// invalidator returns the cache as an invalidator, or nil without one
func (a *app) invalidator() ingestion.CacheInvalidator {
	if a.cache == nil {
		return nil
	}
	return a.cache
}

func (a *app) close(ctx context.Context) {
	if a.nc != nil {
		if err := a.nc.Drain(); err != nil {
			a.logger.Warn("failed to drain NATS connection", zap.Error(err))
		}
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	a.shutdown(ctx)
	_ = a.logger.Sync()
}

// parseID parses a required uuid flag
func parseID(flag, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("--%s is required", flag)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return id, nil
}
