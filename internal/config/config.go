package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the environment-driven settings. Values from a .env file in
// the working directory are loaded first; real environment variables win.
type Config struct {
	TranslateEndpoint string        `env:"LANGTABLE_TRANSLATE_ENDPOINT" envDefault:"http://localhost:3000/api/translate"`
	TranslateTimeout  time.Duration `env:"LANGTABLE_TRANSLATE_TIMEOUT"  envDefault:"30s"`
	SourceLang        string        `env:"LANGTABLE_SOURCE_LANG"        envDefault:"en"`
	TargetLang        string        `env:"LANGTABLE_TARGET_LANG"        envDefault:"ja"`
	UILang            string        `env:"LANGTABLE_UI_LANG"`
	LogLevel          string        `env:"LANGTABLE_LOG_LEVEL"          envDefault:"info"`
	LogFile           string        `env:"LANGTABLE_LOG_FILE"`
	SettingsPath      string        `env:"LANGTABLE_SETTINGS"`
}

// Load reads the optional env files, then the environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		log.Debug().Msg("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
