package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to environment variables.
type FileConfig struct {
	LLM struct {
		Provider string `yaml:"provider" json:"provider"`
		BaseURL  string `yaml:"base" json:"base"`
		Model    string `yaml:"model" json:"model"`
		APIKey   string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Log struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"log" json:"log"`

	Cache struct {
		File string `yaml:"file" json:"file"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig. Unknown extensions are
// tried as YAML first, then JSON.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset, so file config supplies defaults without beating
// the environment overlay that runs after it.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Provider == "" && fc.LLM.Provider != "" {
		cfg.Provider = fc.LLM.Provider
	}
	if cfg.BaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.BaseURL = fc.LLM.BaseURL
	}
	if cfg.Model == "" && fc.LLM.Model != "" {
		cfg.Model = fc.LLM.Model
	}
	if cfg.APIKey == "" && fc.LLM.APIKey != "" {
		cfg.APIKey = fc.LLM.APIKey
	}
	if cfg.LogDir == "" && fc.Log.Dir != "" {
		cfg.LogDir = fc.Log.Dir
	}
	if cfg.CachePath == "" && fc.Cache.File != "" {
		cfg.CachePath = fc.Cache.File
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
