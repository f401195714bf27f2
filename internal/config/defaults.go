package config

const (
	defaultConfigPath   = "~/.config/wadmaps/config.toml"
	projectConfigName   = "wadmaps.toml"
	defaultDataDir      = "~/.local/share/wadmaps"
	defaultLogDir       = "~/.local/share/wadmaps/logs"
	catalogFileName     = "catalog.db"
	defaultWorkers      = 4
	maxWorkers          = 64
	defaultMaxFileMiB   = 256
	defaultDebounceMS   = 500
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultWADExtension = ".wad"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Scan: Scan{
			Workers:    defaultWorkers,
			MaxFileMiB: defaultMaxFileMiB,
			Extensions: []string{defaultWADExtension},
		},
		Watch: Watch{
			DebounceMS: defaultDebounceMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
