/*
Package config loads server configuration from the environment.

PURPOSE:
  Everything except the port and database path (which stay command-line
  flags, overriding these defaults) comes from environment variables.

ENVIRONMENT:
  PORT                   HTTP server port (default 8080)
  DB_PATH                SQLite database path (default financegpt.db)
  LLM_ENDPOINT           Text-generation endpoint (default http://localhost:11434)
  LLM_MODEL              Model name (default llama3.2)
  MARKET_ENDPOINT        Market-data endpoint (default Alpha Vantage)
  ALPHA_VANTAGE_API_KEY  Market-data API key (empty disables market routes)
  ALLOWED_ORIGINS        Comma-separated CORS origins for the web frontend
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	DBPath         string   `env:"DB_PATH" envDefault:"financegpt.db"`
	LLMEndpoint    string   `env:"LLM_ENDPOINT" envDefault:"http://localhost:11434"`
	LLMModel       string   `env:"LLM_MODEL" envDefault:"llama3.2"`
	MarketEndpoint string   `env:"MARKET_ENDPOINT" envDefault:"https://www.alphavantage.co/query"`
	MarketAPIKey   string   `env:"ALPHA_VANTAGE_API_KEY"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
