package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTierNotFound    = errors.New("tier not found")
	ErrTiersReadOnly   = errors.New("tier catalog is read-only")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	StartSession(ctx context.Context, playerCount int, tier string, seed *int64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	RequestRoll(ctx context.Context, sessionID string) (*RollResult, error)

	// Game State
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Tiers
	ListTiers(ctx context.Context) ([]*TierInfo, error)
	LoadTier(ctx context.Context, name string) (*engine.Tier, error)
	SaveTier(ctx context.Context, name string, tier *engine.Tier) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, game *engine.Game, tier string, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// TierManager loads the board catalog
type TierManager interface {
	LoadTier(name string) (*engine.Tier, error)
	ListTiers() ([]*TierInfo, error)
	SaveTier(name string, tier *engine.Tier) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Game           *engine.Game
	Tier           string
	Seed           int64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
