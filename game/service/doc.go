// Package service provides the business logic layer for the Snakes and Ladders game server.
//
// The service package implements:
//   - Multi-session game management
//   - Tier lookup and random board selection
//   - Roll requests serialised per service
//   - Turn history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session storage and lifecycle.
// TierManager loads the difficulty tiers that hold the board pools.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine.Game with its own seeded
// random source, so two sessions started with the same seed and tier replay
// identically.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	tierMgr, _ := config.NewDefaultManager()
//	gameService := service.NewGameService(sessionMgr, tierMgr, service.WithLogger(logger))
//
//	info, err := gameService.StartSession(ctx, 2, "easy", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.RequestRoll(ctx, info.ID)
//
// Errors:
//
// Engine sentinels (engine.ErrInvalidConfiguration, engine.ErrInvalidState, ...)
// are wrapped, never replaced, so callers match them with errors.Is. Lookups of
// unknown sessions or tiers return ErrSessionNotFound or ErrTierNotFound.
package service
