// Package engine provides the core game logic for Snakes and Ladders.
//
// The engine package implements the game rules including:
//   - Board layout validation (snakes, ladders and their invariants)
//   - Pure movement resolution for a position and a die value
//   - Turn order, board entry and win detection
//   - Injectable, seedable randomness for dice
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by Game. Layout holds one board's jump squares. TurnRecord is
// the full event record of a single turn, and Snapshot is a read-only view
// used for the initial render or a resync.
//
// Usage:
//
//	layout := &engine.Layout{
//		Name:    "demo",
//		Snakes:  map[int]int{16: 6},
//		Ladders: map[int]int{4: 14},
//	}
//
//	game, err := engine.NewGame(2, layout, engine.NewSource(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	record, err := game.RequestRoll()
//	snapshot := game.Snapshot()
//
// Game Rules:
//
// Tokens start off the board and enter on square 1 only with a 6. A roll that
// would pass square 100 is forfeited. Landing on a ladder foot or snake head
// moves the token once to the other end; landing exactly on 100 wins. Turns
// rotate strictly through the players with no extra turn for any roll.
//
// Resolution is instantaneous: RequestRoll returns the ordered step and jump
// events so a renderer can pace the animation on its own.
package engine
