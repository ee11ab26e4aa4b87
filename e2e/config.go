package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// SALA_ADDR points at a running room, e.g. http://localhost:5000
	SalaAddr string `envconfig:"SALA_ADDR"`
	// E2E_DEBUG_JSON allows dumping full HTTP request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
