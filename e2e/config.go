package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_ADDR is the host:port of a running server; scenarios are skipped without it
	Addr      string `envconfig:"E2E_ADDR"`
	BiroToken string `envconfig:"E2E_BIRO_TOKEN"`
	MatchID   int64  `envconfig:"E2E_MATCH_ID"`
	// E2E_DEBUG_JSON dumps every frame received
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	Colours   bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
