package config

import (
	"encoding/json"
	"os"

	"github.com/appstash/appstash/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields stay empty and do not overwrite the current Config values.
type JsonConfig struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	Backend   string `json:"backend"`
	StorePath string `json:"store_path"`
}

// parseJson overlays Config with values loaded from the JSON file named
// by -c/-config. No flag means no JSON is loaded. Read or parse errors
// panic; config problems should stop the program before any store is
// opened.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.AppName != "" {
		cfg.AppName = jc.AppName
	}
	if jc.Version != "" {
		cfg.Version = jc.Version
	}
	if jc.Backend != "" {
		cfg.Backend = jc.Backend
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
}
