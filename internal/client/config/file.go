package config

import (
	"os"

	"github.com/dmitrijs2005/nursenotes/internal/flagx"
	"sigs.k8s.io/yaml"
)

// FileConfig is the DTO for config files. YAML is converted to JSON first,
// so the json tags apply to both formats.
type FileConfig struct {
	StoragePath string `json:"storage_path"`
	Backend     string `json:"backend"`
	ExportDir   string `json:"export_dir"`
	LogLevel    string `json:"log_level"`
	AssumeYes   *bool  `json:"assume_yes"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		panic(err)
	}

	if fc.StoragePath != "" {
		cfg.StoragePath = fc.StoragePath
	}
	if fc.Backend != "" {
		cfg.Backend = fc.Backend
	}
	if fc.ExportDir != "" {
		cfg.ExportDir = fc.ExportDir
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.AssumeYes != nil {
		cfg.AssumeYes = *fc.AssumeYes
	}
}
