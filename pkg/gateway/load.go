package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/netsdk/internal/config"
	"github.com/samvad-hq/netsdk/internal/logger"
	"github.com/samvad-hq/netsdk/internal/storage"
	"github.com/samvad-hq/netsdk/pkg/endpoints"
	"github.com/samvad-hq/netsdk/pkg/httpclient"
	"github.com/samvad-hq/netsdk/pkg/requests"
	"github.com/samvad-hq/netsdk/pkg/sinks"
	"go.uber.org/zap"
)

// Load builds a Gateway from environment configuration (see internal/config).
func Load(ctx context.Context) (*Gateway, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return FromConfig(ctx, cfg, log)
}

// FromConfig wires executor, endpoint registry, journal and sinks from cfg.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Gateway, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var restyLog resty.Logger = zap.NewNop().Sugar()
	if zl, ok := log.(*logger.ZapLogger); ok {
		restyLog = zl.Sugar()
	}
	exec := requests.NewExecutor(httpclient.NewRestyClient(cfg.RequestTimeout, restyLog), cfg.Workers, log)

	g := New(exec, WithBaseURL(cfg.BaseURL), WithLogger(log))
	if zl, ok := log.(*logger.ZapLogger); ok {
		g.closers = append(g.closers, zl.Close)
	}

	if strings.TrimSpace(cfg.EndpointsFile) != "" {
		reg, err := endpoints.LoadRegistry(cfg.EndpointsFile)
		if err != nil {
			_ = g.Close()
			return nil, fmt.Errorf("load endpoints registry: %w", err)
		}
		g.endpoints = reg
		log.InfoObj("endpoints registry loaded", "endpoints_meta", map[string]any{
			"count": len(reg.All()),
		})
	}

	journal, err := storage.NewJournal(cfg.JournalType, cfg.JournalPath, storage.Options{
		EntryTTL:        cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		_ = g.Close()
		return nil, fmt.Errorf("init journal: %w", err)
	}
	g.journal = journal
	g.closers = append(g.closers, journal.Close)
	log.InfoObj("journal initialized", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.JournalPath,
		"entry_ttl_seconds":        int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	if strings.TrimSpace(cfg.SinksFile) != "" {
		fanout, err := buildFanout(ctx, cfg.SinksFile, log)
		if err != nil {
			_ = g.Close()
			return nil, err
		}
		g.fanout = fanout
		g.closers = append(g.closers, fanout.Close)
	}

	return g, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*sinks.Fanout, error) {
	sinkReg, err := sinks.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}

	enabled := sinkReg.Enabled()
	built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})
	return sinks.NewFanout(built), nil
}
