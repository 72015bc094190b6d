package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "URLTEMPLATE_"

// Config holds settings shared by the CLI commands. Flags
// override these values.
type Config struct {
	// ParamFiles are parameter files loaded before explicit
	// pairs.
	ParamFiles []string `env:"PARAM_FILES" envSeparator:","`
	// Strict rejects placeholders missing from the params.
	Strict bool `env:"STRICT" envDefault:"false"`
	// Format is "text" or "json".
	Format string `env:"FORMAT" envDefault:"text"`
	// LogLevel is a slog level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load builds a Config from environ (KEY=VALUE entries, as
// returned by os.Environ) layered over the dotenv file at
// dotenvPath. A missing dotenv file is ignored; environ wins
// over the file.
func Load(dotenvPath string, environ []string) (*Config, error) {
	const errCtx = "loading config"

	vars := make(map[string]string)

	if dotenvPath != "" {
		fileVars, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(
				"%s: reading %s: %w", errCtx, dotenvPath, err,
			)
		}

		for key, val := range fileVars {
			vars[key] = val
		}
	}

	for _, kv := range environ {
		if key, val, ok := strings.Cut(kv, "="); ok {
			vars[key] = val
		}
	}

	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, env.Options{
		Environment: vars,
		Prefix:      Prefix,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf(
			"%sFORMAT must be text or json, got %q",
			Prefix, c.Format,
		)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf(
			"%sLOG_LEVEL: %w", Prefix, err,
		)
	}

	return lvl, nil
}
