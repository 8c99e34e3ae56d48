// Command snakesladders starts the Snakes and Ladders server.
//
// It supports three commands:
//  1. "serve" (default) runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "validate" checks a directory of tier files and exits non-zero on errors
//
// Flags control host/port, tier directory, debug logging, session expiry,
// and optional ngrok tunneling for easy external access during development.
// Every flag can also be set through the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Snakes and Ladders Server"
)

func main() {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}

	if err := newCommand(settings).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the command tree. Flags live on the root so they apply to every subcommand.
func newCommand(settings Settings) *cli.Command {
	serve := func(ctx context.Context, cmd *cli.Command) error {
		s := settings.fromCommand(cmd)
		return withApp(s, func(a *app) error {
			return a.runHTTPServer(ctx)
		})
	}

	return &cli.Command{
		Name:    "snakesladders",
		Usage:   AppName,
		Version: Version,
		Flags:   settings.flags(),
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run HTTP server with API, WebSocket, and MCP endpoint",
				Action: serve,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "run MCP stdio server, reusing a running API or starting an internal one",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s := settings.fromCommand(cmd)
					return withApp(s, func(a *app) error {
						return a.runStdioMCP(ctx)
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "validate tier files",
				ArgsUsage: "[dir]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir := cmd.Args().First()
					if dir == "" {
						dir = cmd.String("tier-dir")
					}
					return runValidate(os.Stdout, dir)
				},
			},
		},
	}
}

// newLogger returns a development logger in debug mode and a production one otherwise
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func withApp(s Settings, fn func(*app) error) error {
	logger, err := newLogger(s.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	a, err := newApp(s, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return fn(a)
}
