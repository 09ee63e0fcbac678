package main

import (
	"fmt"

	"github.com/tiendalab/tienda-bff/internal/config"
)

// loadAppConfig loads the application configuration from defaults, an
// optional config.yaml and TIENDA_ environment variables.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
