package config

const (
	defaultConfigPath    = "~/.config/photosort/config.toml"
	projectConfigFile    = "photosort.toml"
	defaultStateDir      = "~/.local/share/photosort"
	defaultLogDir        = "~/.local/share/photosort/logs"
	defaultMinFreeMiB    = 64
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultRetentionDays = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Sort: Sort{
			MinFreeMiB: defaultMinFreeMiB,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RunLogs:       true,
			RetentionDays: defaultRetentionDays,
		},
	}
}
