package config

import (
	"flag"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Addr             string   `env:"RUN_ADDRESS" env-default:"localhost:8081"`
	ExchangeRateURL  string   `env:"EXCHANGE_RATE_ADDRESS" env-default:"https://v3.exchangerate-api.com/pair"`
	DatabaseURL      string   `env:"DATABASE_URI"`
	PrivateKey       string   `env:"PRIVATE_KEY" env-default:"privatekey"`
	AlertsFile       string   `env:"ALERTS_FILE" env-default:"externalFiles/alerts.txt"`
	OutgoingFile     string   `env:"OUTGOING_FILE" env-default:"externalFiles/outgoing.txt"`
	AuthDisabledURLs []string `env:"AUTH_DISABLED_URLS" env-default:"/login,/register" env-separator:","`
}

func Load() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.Addr, "a", "localhost:8081", "HTTP server address")
	flag.StringVar(&cfg.ExchangeRateURL, "r", "https://v3.exchangerate-api.com/pair", "exchange rate provider address")
	flag.StringVar(&cfg.DatabaseURL, "d", "", "database URL for state snapshots")

	flag.Parse()

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	return cfg, nil
}
