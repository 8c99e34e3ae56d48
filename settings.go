package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// Settings is the server configuration. Environment variables (and a .env
// file) provide the defaults, command line flags override them.
type Settings struct {
	Host       string        `env:"HOST" envDefault:"localhost"`
	Port       int           `env:"PORT" envDefault:"8080"`
	TierDir    string        `env:"TIER_DIR"` // empty uses the built-in tiers
	Debug      bool          `env:"DEBUG"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	NgrokEnabled   bool   `env:"NGROK_ENABLED"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`
}

// loadSettings reads .env when present and parses the environment
func loadSettings() (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Addr is the host:port the HTTP server binds to
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// flags declares the command line flags with the environment values as defaults
func (s Settings) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "host", Value: s.Host, Usage: "HTTP server host"},
		&cli.IntFlag{Name: "port", Value: s.Port, Usage: "HTTP server port"},
		&cli.StringFlag{Name: "tier-dir", Value: s.TierDir, Usage: "directory of tier YAML files (built-in tiers when empty)"},
		&cli.BoolFlag{Name: "debug", Value: s.Debug, Usage: "enable debug logging"},
		&cli.DurationFlag{Name: "session-ttl", Value: s.SessionTTL, Usage: "remove sessions idle for longer than this"},
		&cli.BoolFlag{Name: "ngrok", Value: s.NgrokEnabled, Usage: "expose the server through an ngrok tunnel"},
		&cli.StringFlag{Name: "ngrok-auth", Value: s.NgrokAuthToken, Usage: "ngrok auth token"},
		&cli.StringFlag{Name: "ngrok-domain", Value: s.NgrokDomain, Usage: "custom ngrok domain"},
	}
}

// fromCommand applies the parsed flags
func (s Settings) fromCommand(cmd *cli.Command) Settings {
	s.Host = cmd.String("host")
	s.Port = cmd.Int("port")
	s.TierDir = cmd.String("tier-dir")
	s.Debug = cmd.Bool("debug")
	s.SessionTTL = cmd.Duration("session-ttl")
	s.NgrokEnabled = cmd.Bool("ngrok")
	s.NgrokAuthToken = cmd.String("ngrok-auth")
	s.NgrokDomain = cmd.String("ngrok-domain")
	return s
}
