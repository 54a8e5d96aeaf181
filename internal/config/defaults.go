package config

const (
	defaultDataDir           = "~/.local/share/cardkeep"
	defaultLogDir            = "~/.local/share/cardkeep/logs"
	defaultAPIBind           = "127.0.0.1:7841"
	defaultTCGBaseURL        = "https://api.pokemontcg.io/v2"
	defaultTCGRequestTimeout = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		TCG: TCG{
			BaseURL:        defaultTCGBaseURL,
			RequestTimeout: defaultTCGRequestTimeout,
		},
		Ingest: Ingest{
			LookupEnabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
