package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenePath string // .hcl file or directory

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Inspect writes the declaration listing after all steps have run.
	Inspect bool
	// Watch keeps running after the steps and reloads the current scene when
	// a scene file changes.
	Watch bool
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenePath == "" {
		return nil, errors.New("ScenePath is a required configuration field and cannot be empty")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, errors.New("HealthcheckPort must be between 0 and 65535")
	}
	return &cfg, nil
}
