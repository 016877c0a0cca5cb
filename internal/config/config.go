package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`

	SessionToken     string `env:"SESSION_TOKEN"`
	SessionTokenFile string `env:"SESSION_TOKEN_FILE" env-default:""`

	AutosaveDebounce  time.Duration `env:"AUTOSAVE_DEBOUNCE" env-default:"1500ms"`
	AutosaveInterval  time.Duration `env:"AUTOSAVE_INTERVAL" env-default:"30s"`
	SavedStatusDelay  time.Duration `env:"SAVED_STATUS_DELAY" env-default:"2s"`
	RosterConcurrency int           `env:"ROSTER_CONCURRENCY" env-default:"8"`

	CacheDir string        `env:"CACHE_DIR" env-default:""`
	CacheTTL time.Duration `env:"CACHE_TTL" env-default:"24h"`
	RedisURL string        `env:"REDIS_URL" env-default:""`
}

func New() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig("./config/.env", &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.SessionToken == "" && cfg.SessionTokenFile == "" {
		return nil, fmt.Errorf("one of SESSION_TOKEN or SESSION_TOKEN_FILE is required")
	}
	if cfg.RosterConcurrency <= 0 {
		return nil, fmt.Errorf("ROSTER_CONCURRENCY must be > 0")
	}
	return &cfg, nil
}
