// Package config assembles runtime settings for the appstash CLI.
//
// Sources are applied in order, later ones winning:
// defaults → JSON file (-c/-config) → environment (APPSTASH_*) → flags.
package config

import "github.com/appstash/appstash/internal/stash"

// Backend names accepted in Config.Backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds runtime settings for the appstash CLI.
//
// Fields:
//   - AppName: namespace prefix for all physical store keys.
//   - Version: data-format version stamped on written records.
//   - Backend: which kv backend to open (memory, file, sqlite).
//   - StorePath: file path for the file and sqlite backends.
type Config struct {
	AppName   string `env:"APP_NAME"`
	Version   string `env:"VERSION"`
	Backend   string `env:"BACKEND"`
	StorePath string `env:"STORE_PATH"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AppName = stash.DefaultAppName
	c.Version = stash.DefaultVersion
	c.Backend = BackendFile
	c.StorePath = "appstash.json"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
