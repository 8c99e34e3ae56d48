// Package mcp exposes Snakes and Ladders to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, so agents and browser renderers share the same sessions and the
// same WebSocket broadcasts.
//
// MCP Tools:
//   - start_game: Create a session for 2-6 players on a tier, optionally seeded
//   - roll_dice: Resolve one turn for the current player
//   - game_snapshot: Positions, current player and game state
//   - turn_history: Paginated turn records
//   - list_sessions: Active sessions
//   - list_tiers: Available difficulty tiers
//   - game_instructions: The rules
//
// Tool arguments are decoded with weak typing, so "2", 2 and 2.0 are all a
// valid player_count.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
