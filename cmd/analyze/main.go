// Command analyze prints quick, human-readable statistics about tier boards.
// For every board it summarizes the snakes and ladders and simulates seeded
// games to estimate how many turns a game takes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// maxTurns bounds a simulated game
const maxTurns = 100000

var errTooLong = errors.New("simulation exceeded turn limit")

// SimulationResult aggregates the outcome of many games on one board
type SimulationResult struct {
	Games     int
	MeanTurns float64
	MinTurns  int
	MaxTurns  int
	Wins      map[int]int // by player ID
	Snakes    int         // snake slides across all games
	Ladders   int         // ladder climbs across all games
}

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "simulate games on every tier board",
		ArgsUsage: "[tier-dir]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Value: 1000, Usage: "games simulated per board"},
			&cli.IntFlag{Name: "players", Value: 2, Usage: "players per game"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "seed of the first game, later games use seed+i"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(os.Stdout, cmd.Args().First(), cmd.Int("games"), cmd.Int("players"), cmd.Int64("seed"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string, games, players int, seed int64) error {
	var tiers *config.Manager
	var err error
	if dir == "" {
		tiers, err = config.NewDefaultManager()
	} else {
		tiers, err = config.NewManager(dir)
	}
	if err != nil {
		return err
	}

	infos, err := tiers.ListTiers()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return fmt.Errorf("no tiers found")
	}

	for _, info := range infos {
		tier, err := tiers.LoadTier(info.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n=== Tier %s ===\n", tier.Name)
		if tier.Description != "" {
			fmt.Fprintf(w, "%s\n", tier.Description)
		}
		for _, board := range tier.Boards {
			if err := analyzeBoard(w, board, games, players, seed); err != nil {
				return fmt.Errorf("board %s: %w", board.Name, err)
			}
		}
	}
	return nil
}

func analyzeBoard(w io.Writer, layout *engine.Layout, games, players int, seed int64) error {
	stats := engine.AnalyzeLayout(layout)

	fmt.Fprintf(w, "\n--- %s ---\n", layout.Name)
	fmt.Fprintf(w, "Snakes: %d (longest %d → %d, %d squares lost in total)\n",
		stats.Snakes, stats.LongestSnake.From, stats.LongestSnake.To, stats.SquaresLost)
	fmt.Fprintf(w, "Ladders: %d (longest %d → %d, %d squares gained in total)\n",
		stats.Ladders, stats.LongestLadder.From, stats.LongestLadder.To, stats.SquaresGained)

	jumps := engine.Jumps(layout)
	parts := make([]string, 0, len(jumps))
	for _, j := range jumps {
		parts = append(parts, fmt.Sprintf("%d→%d", j.From, j.To))
	}
	fmt.Fprintf(w, "Jumps: %s\n", strings.Join(parts, " "))

	res, err := simulate(layout, games, players, seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Simulated %d games with %d players: mean %.1f turns, min %d, max %d\n",
		res.Games, players, res.MeanTurns, res.MinTurns, res.MaxTurns)
	fmt.Fprintf(w, "Per game: %.1f snake slides, %.1f ladder climbs\n",
		float64(res.Snakes)/float64(res.Games), float64(res.Ladders)/float64(res.Games))

	ids := make([]int, 0, len(res.Wins))
	for id := range res.Wins {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  Player %d won %.1f%%\n", id, 100*float64(res.Wins[id])/float64(res.Games))
	}
	return nil
}

// simulate plays games seeded seed, seed+1, ... to completion
func simulate(layout *engine.Layout, games, players int, seed int64) (*SimulationResult, error) {
	if games <= 0 {
		return nil, fmt.Errorf("%w: games must be positive", engine.ErrInvalidConfiguration)
	}

	res := &SimulationResult{Games: games, Wins: map[int]int{}}
	total := 0

	for i := 0; i < games; i++ {
		game, err := engine.NewGame(players, layout, engine.NewSource(seed+int64(i)))
		if err != nil {
			return nil, err
		}

		turns := 0
		for !game.IsGameOver() {
			if turns >= maxTurns {
				return nil, errTooLong
			}
			turns++
			turn, err := game.RequestRoll()
			if err != nil {
				return nil, err
			}
			if turn.JumpEvent != nil {
				switch turn.JumpEvent.Kind {
				case engine.Snake:
					res.Snakes++
				case engine.Ladder:
					res.Ladders++
				}
			}
		}

		total += turns
		if i == 0 || turns < res.MinTurns {
			res.MinTurns = turns
		}
		if turns > res.MaxTurns {
			res.MaxTurns = turns
		}
		if winner, ok := game.Winner(); ok {
			res.Wins[winner.ID]++
		}
	}

	res.MeanTurns = float64(total) / float64(games)
	return res, nil
}
