// Package bot wires the conversation flow to the Telegram transport and
// the backing stores.
package bot

import (
	"fmt"
	"os"

	coreconfig "freelancebot/core/config"
	"freelancebot/core/database"
	"freelancebot/gigachat"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config aggregates transport, storage, and generation settings.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database database.Config `yaml:"database"`
	GigaChat gigachat.Config `yaml:"gigachat"`
}

// LoadConfig reads the application configuration from a YAML file and
// overlays environment variables.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := gigachat.Normalize(&cfg.GigaChat); err != nil {
		return nil, err
	}
	return &cfg, nil
}
