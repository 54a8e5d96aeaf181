package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTCG()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeTCG() {
	c.TCG.APIKey = strings.TrimSpace(c.TCG.APIKey)
	if c.TCG.APIKey == "" {
		if value, ok := os.LookupEnv("CARDKEEP_TCG_API_KEY"); ok {
			c.TCG.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("POKEMONTCG_API_KEY"); ok {
			c.TCG.APIKey = strings.TrimSpace(value)
		}
	}
	c.TCG.BaseURL = strings.TrimSpace(c.TCG.BaseURL)
	if c.TCG.BaseURL == "" {
		c.TCG.BaseURL = defaultTCGBaseURL
	}
	if c.TCG.RequestTimeout <= 0 {
		c.TCG.RequestTimeout = defaultTCGRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
