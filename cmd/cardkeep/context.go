package main

import (
	"strings"
	"sync"
	"time"

	"log/slog"

	"cardkeep/internal/catalog"
	"cardkeep/internal/config"
	"cardkeep/internal/ingest"
	"cardkeep/internal/logging"
	"cardkeep/internal/pricing"
	"cardkeep/internal/resolve"
	"cardkeep/internal/tcgapi"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) openStore() (*catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg)
}

func (c *commandContext) newResolver(logger *slog.Logger) (*resolve.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := tcgapi.New(cfg.TCG.APIKey, cfg.TCG.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.TCG.RequestTimeout) * time.Second
	return resolve.NewResolver(client, logger, timeout), nil
}

func (c *commandContext) newIngestor(store *catalog.Store, logger *slog.Logger) (*ingest.Ingestor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var resolver ingest.Resolver
	if cfg.Ingest.LookupEnabled {
		r, err := c.newResolver(logger)
		if err != nil {
			return nil, err
		}
		resolver = r
	}
	return ingest.NewIngestor(resolver, store, logger, cfg.Ingest.LookupEnabled), nil
}

func (c *commandContext) newRefresher(store *catalog.Store, logger *slog.Logger) (*pricing.Refresher, error) {
	resolver, err := c.newResolver(logger)
	if err != nil {
		return nil, err
	}
	return pricing.NewRefresher(resolver, store, logger), nil
}

func (c *commandContext) newLogger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}
