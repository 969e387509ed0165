package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
	"github.com/dharshaa/air-advisor/internal/infra/aq/csvfile"
	"github.com/dharshaa/air-advisor/internal/infra/aq/openaq"
	"github.com/dharshaa/air-advisor/internal/infra/config"
	"github.com/dharshaa/air-advisor/internal/infra/history"
	"github.com/dharshaa/air-advisor/internal/infra/querylog"
	"github.com/dharshaa/air-advisor/internal/scheduler"
)

func provideAdvisorConfig(cfg *config.Config) airquality.Config {
	return airquality.Config{
		Thresholds: airquality.Thresholds{
			Moderate:  cfg.Advisor.ModerateThreshold,
			Unhealthy: cfg.Advisor.UnhealthyThreshold,
			Hazardous: cfg.Advisor.HazardousThreshold,
		},
		AnomalyRatio:    cfg.Advisor.AnomalyRatio,
		HistoryWindow:   cfg.Advisor.HistoryWindow,
		RecentQueries:   cfg.Advisor.RecentQueries,
		DefaultLocation: cfg.Advisor.DefaultLocation,
	}
}

func provideLiveSource(cfg *config.Config) *openaq.Client {
	return openaq.NewClient(openaq.Config{
		BaseURL:            cfg.Live.BaseURL,
		Timeout:            cfg.Live.Timeout,
		BreakerMaxFailures: cfg.Live.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.Live.BreakerOpenTimeout,
	})
}

func provideCSVSource(cfg *config.Config) *csvfile.Source {
	return csvfile.New(cfg.CSV.Path)
}

func provideResolver(cfg *config.Config, live *openaq.Client, csv *csvfile.Source, logger *slog.Logger) *airquality.Resolver {
	return airquality.NewResolver(live, csv, cfg.Live.Timeout, logger)
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) airquality.HistoryRepository {
	fallback := history.NewMemoryRepository(cfg.History.MaxEntries)
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return history.NewPostgresRepository(pool)
}

func provideQueryLog(cfg *config.Config, logger *slog.Logger) airquality.QueryLog {
	if cfg.QueryLog.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory log", "error", err)
			return querylog.NewMemoryLog(cfg.QueryLog.MaxEntries)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory log", "error", err)
			return querylog.NewMemoryLog(cfg.QueryLog.MaxEntries)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory log", "error", err)
		} else {
			logger.Info("valkey query log enabled", "addr", cfg.QueryLog.Redis.Addr)
			return querylog.NewValkeyLog(client, "airadvisor:queries", cfg.QueryLog.MaxEntries)
		}
	}
	return querylog.NewMemoryLog(cfg.QueryLog.MaxEntries)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.QueryLog.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.QueryLog.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.QueryLog.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideService(cfg *config.Config, resolver *airquality.Resolver, repo airquality.HistoryRepository, queries airquality.QueryLog, logger *slog.Logger) airquality.Service {
	return airquality.NewService(provideAdvisorConfig(cfg), resolver, repo, queries, logger)
}

func provideScheduler(cfg *config.Config, resolver *airquality.Resolver, repo airquality.HistoryRepository, logger *slog.Logger) *scheduler.Scheduler {
	locations := cfg.Scheduler.Locations
	interval := cfg.Scheduler.Interval
	if !cfg.Scheduler.Enabled {
		locations = nil
	}
	return scheduler.New(locations, interval, resolver, repo, logger)
}
