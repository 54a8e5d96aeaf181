package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTCG(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTCG() error {
	if c.TCG.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/cardkeep/config.toml"
		}
		return fmt.Errorf("tcg.api_key is required. Set CARDKEEP_TCG_API_KEY env var or edit %s (create with 'cardkeep config init')", defaultPath)
	}
	if c.TCG.RequestTimeout <= 0 {
		return errors.New("tcg.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}
