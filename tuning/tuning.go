// Package tuning loads player movement configuration from yaml, with
// embedded stock values and an optional on-disk override. A fsnotify
// watcher lets hosts retune a live controller between ticks.
package tuning

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/freerunner/player"
)

//go:embed player.yaml
var tuningFS embed.FS

// PlayerFile is the on-disk override the loader and watcher look for.
const PlayerFile = "player.yaml"

// Default returns the embedded stock tuning.
func Default() (player.Config, error) {
	data, err := tuningFS.ReadFile(PlayerFile)
	if err != nil {
		return player.Config{}, fmt.Errorf("tuning: read embedded defaults: %w", err)
	}
	return parse(data)
}

// Load reads tuning from path, falling back to the embedded defaults
// when the file does not exist.
func Load(path string) (player.Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default()
	}
	if err != nil {
		return player.Config{}, fmt.Errorf("tuning: read %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (player.Config, error) {
	// Unmarshal over the defaults so partial files only override the
	// fields they name.
	cfg := player.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return player.Config{}, fmt.Errorf("tuning: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return player.Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg player.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("tuning: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("tuning: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tuning: write %s: %w", path, err)
	}
	return nil
}
