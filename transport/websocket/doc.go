// Package websocket provides the WebSocket transport for the Snakes and Ladders server.
//
// Renderers connect to /ws?session=<id> and receive JSON messages for that
// session only. The first message is a "snapshot" event holding the current
// board state; every roll afterwards produces a "turn" event carrying the full
// turn record (die value, step events, jump, result) and the snapshot after it.
//
// The server resolves a turn instantly. Pacing the token animation over the
// step events is the renderer's job.
//
// Architecture:
//
// A central Hub owns the client registry and is the only goroutine touching
// it; registration, removal, broadcast and client counts are all requests on
// its channels. Each connection has a read pump and a write pump. Clients too
// slow to drain their buffer are dropped.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID, &snapshot)
//	hub.BroadcastTurn(sessionID, result.Turn, result.Snapshot)
package websocket
