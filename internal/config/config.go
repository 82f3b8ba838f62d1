package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	SaveDir      string `env:"CHARSHEET_SAVE_DIR" envDefault:".saves"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"CHARSHEET_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	DiceSeed     uint64 `env:"CHARSHEET_DICE_SEED"`
	LogFile      string `env:"CHARSHEET_LOG_FILE"`
}

// LoadConfig loads the configuration from environment variables, after
// filling unset ones from a .env file in the working directory when there
// is one. A missing GEMINI_API_KEY only disables narration.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// NarrationEnabled reports whether a Gemini key is configured.
func (c *Config) NarrationEnabled() bool {
	return c.GeminiAPIKey != ""
}
