package state

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DatasetCfg points at the ITDK files one replay run consumes.
type DatasetCfg struct {
	// Nodes is the .nodes file (node id to interface addresses).
	Nodes string
	// Links is the .links file the graph is built from.
	Links string
	// Geo is the optional .nodes.geo file; when set, nodes without
	// geo coordinates are dropped before graph construction.
	Geo string `yaml:",omitempty"`
}

// CloudCfg names one provider range file.
type CloudCfg struct {
	Provider string // "aws" or "gcloud"
	Ranges   string // path to the provider's published ip-ranges JSON
}

// Cfg is the process-level configuration, loaded from YAML.
type Cfg struct {
	Dataset DatasetCfg
	Clouds  []CloudCfg
	// Workers caps concurrent searches; 0 means one per CPU.
	Workers int `yaml:",omitempty"`
	// ProgressEvery logs batch progress every n completed queries.
	ProgressEvery int `yaml:"progress_every,omitempty"`
	// LogPath appends logs to a rotating file in addition to stderr.
	LogPath string `yaml:"log_path,omitempty"`
}

func LoadConfig(path string) (*Cfg, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Cfg
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := ConfigValidator(&cfg); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return &cfg, nil
}
