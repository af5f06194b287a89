package state

import (
	"fmt"
	"os"
	"slices"
)

var validProviders = []string{"aws", "gcloud"}

func FileValidator(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, want a file", path)
	}
	return nil
}

func ConfigValidator(cfg *Cfg) error {
	if cfg.Dataset.Nodes == "" {
		return fmt.Errorf("dataset.nodes is required")
	}
	if cfg.Dataset.Links == "" {
		return fmt.Errorf("dataset.links is required")
	}
	for _, cloud := range cfg.Clouds {
		if !slices.Contains(validProviders, cloud.Provider) {
			return fmt.Errorf("unsupported provider %q, must be one of %v", cloud.Provider, validProviders)
		}
		if cloud.Ranges == "" {
			return fmt.Errorf("cloud %s has no ranges file", cloud.Provider)
		}
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must be >= 0, got %d", cfg.ProgressEvery)
	}
	return nil
}
