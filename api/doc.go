// Package api provides the HTTP REST API for the Snakes and Ladders server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Start a session {player_count, tier, seed?}
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Get a session with its layout and snapshot
//   - DELETE /api/sessions/{id} - End a session
//
// Game Operations:
//   - GET /api/sessions/{id}/snapshot - Positions, current player and state
//   - POST /api/sessions/{id}/roll - Roll for the current player and resolve the turn
//   - GET /api/sessions/{id}/history - Turn records (page, limit, order)
//
// Tiers:
//   - GET /api/tiers - List difficulty tiers
//   - GET /api/tiers/{name} - Get a tier with its boards
//   - POST /api/tiers - Save a tier (writable tier directories only)
//
// Other:
//   - GET /ws?session={id} - WebSocket feed of turn events for renderers
//   - GET /health - Liveness check
//
// Errors are returned as {"error": "..."}. Bad input maps to 400, a board
// that breaks the jump rules to 422, a roll outside WAITING_FOR_ROLL to 409
// and unknown sessions or tiers to 404.
package api
