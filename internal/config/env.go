package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with APPSTASH_-prefixed environment
// variables (APPSTASH_APP_NAME, APPSTASH_VERSION, APPSTASH_BACKEND,
// APPSTASH_STORE_PATH). Unset variables leave the current values alone.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "APPSTASH_"}); err != nil {
		panic(err)
	}
}
