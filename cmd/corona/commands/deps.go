package commands

import (
	"context"
	"fmt"

	"github.com/limejump/corona-analytics/internal/asset"
	"github.com/limejump/corona-analytics/internal/company"
	"github.com/limejump/corona-analytics/internal/external/corona"
	"github.com/limejump/corona-analytics/pkg/config"
	"github.com/limejump/corona-analytics/pkg/httputil"
	"github.com/limejump/corona-analytics/pkg/logger"
	"github.com/limejump/corona-analytics/pkg/metrics"
	"github.com/limejump/corona-analytics/pkg/redis"
)

// deps holds everything a command needs, wired from config
type deps struct {
	cfg       *config.Config
	log       *logger.Logger
	metrics   *metrics.Registry
	redis     *redis.Client
	client    *corona.Client
	assets    *asset.Service
	companies *company.Service
}

// newDeps loads config and builds the service graph.
// Callers must call close when done.
func newDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	reg := metrics.New()

	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(cfg, log).WithObserver(reg)
	client := corona.NewClient(cfg.Corona, httpClient, log)

	quotes := corona.NewCachedQuotes(client, redis.NewCache(rdb, "corona"), cfg.Redis.CacheTTL, log).
		WithRecorder(reg)

	assets := asset.NewService(quotes, client, log, cfg.Corona.Concurrency).WithRecorder(reg)

	log.WithFields(map[string]interface{}{
		"base_url": cfg.Corona.BaseURL,
		"redis":    rdb.Enabled(),
	}).Debug("Dependencies ready")

	return &deps{
		cfg:       cfg,
		log:       log,
		metrics:   reg,
		redis:     rdb,
		client:    client,
		assets:    assets,
		companies: company.NewService(client, log),
	}, nil
}

func (d *deps) close() {
	if err := d.redis.Close(); err != nil {
		d.log.WithError(err).Warn("Failed to close redis")
	}
}
