package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPath     string // script to run
	ExtensionsPath string // hcl manifests + glue code, optional

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, errors.New("HealthcheckPort must be between 0 and 65535")
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LogLevel: %w", err)
	}
	if err := checkLogFormat(cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("invalid LogFormat: %w", err)
	}

	return &cfg, nil
}
