package service

import (
	"time"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	Tier           string             `json:"tier"`
	Seed           int64              `json:"seed"`
	PlayerCount    int                `json:"player_count"`
	Players        []engine.Player    `json:"players"`
	Layout         *engine.Layout     `json:"layout"`
	Snapshot       engine.Snapshot    `json:"snapshot"`
	LastTurn       *engine.TurnRecord `json:"last_turn,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
}

// RollResult contains the outcome of one roll request
type RollResult struct {
	SessionID string             `json:"session_id"`
	Turn      *engine.TurnRecord `json:"turn"`
	Snapshot  engine.Snapshot    `json:"snapshot"`
	GameOver  bool               `json:"game_over"`
	WinnerID  int                `json:"winner_id,omitempty"`
	Message   string             `json:"message"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// TierInfo provides information about a difficulty tier
type TierInfo struct {
	ID          string   `json:"id"` // The identifier to use for session creation
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Boards      int      `json:"boards"`
	BoardNames  []string `json:"board_names"`
}
