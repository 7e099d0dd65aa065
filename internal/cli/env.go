package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envDefaults are the flag defaults taken from the environment. Flags given
// on the command line win.
type envDefaults struct {
	ScenePath       string `env:"SCENEBUS_SCENES"`
	LogFormat       string `env:"SCENEBUS_LOG_FORMAT" envDefault:"text"`
	LogLevel        string `env:"SCENEBUS_LOG_LEVEL" envDefault:"info"`
	HealthcheckPort int    `env:"SCENEBUS_HEALTHCHECK_PORT" envDefault:"0"`
}

// parseEnv loads envDefaults from environment variables.
func parseEnv() (*envDefaults, error) {
	var d envDefaults
	if err := env.Parse(&d); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &d, nil
}
