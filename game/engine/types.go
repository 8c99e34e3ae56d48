package engine

import (
	"encoding/json"
	"fmt"
)

const (
	// Board geometry and rule constants
	BoardSize   = 100
	DieSides    = 6
	EntryRoll   = 6
	EntrySquare = 1
	OffBoard    = 0

	MinPlayers = 2
	MaxPlayers = 6
)

// State is the turn state of a game
type State int

const (
	StateWaitingForRoll State = iota
	StateResolvingMove
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateWaitingForRoll:
		return "WAITING_FOR_ROLL"
	case StateResolvingMove:
		return "RESOLVING_MOVE"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the state by name
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a state name
func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "WAITING_FOR_ROLL":
		*s = StateWaitingForRoll
	case "RESOLVING_MOVE":
		*s = StateResolvingMove
	case "GAME_OVER":
		*s = StateGameOver
	default:
		return fmt.Errorf("unknown state %q", name)
	}
	return nil
}

// JumpKind distinguishes ladders from snakes
type JumpKind string

const (
	Ladder JumpKind = "ladder"
	Snake  JumpKind = "snake"
)

// TurnResult tells the driver whether play continues
type TurnResult string

const (
	TurnContinue TurnResult = "CONTINUE"
	TurnWin      TurnResult = "WIN"
)

// EventType names the state changes raised to the driver
type EventType string

const (
	EventPlayerEntered EventType = "PlayerEntered"
	EventPlayerMoved   EventType = "PlayerMoved"
	EventPlayerJumped  EventType = "PlayerJumped"
	EventTurnAdvanced  EventType = "TurnAdvanced"
	EventGameWon       EventType = "GameWon"
)

// Player is a token on the board
type Player struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ColorToken string `json:"color_token"`
	Position   int    `json:"position"`
}

// Jump describes a single ladder climb or snake slide
type Jump struct {
	From int      `json:"from"`
	To   int      `json:"to"`
	Kind JumpKind `json:"kind"`
}

// Event is one entry of the ordered event stream of a turn.
// Only the fields relevant to Type are set.
type Event struct {
	Type      EventType `json:"type"`
	PlayerID  int       `json:"player_id,omitempty"`
	Square    int       `json:"square,omitempty"`
	Step      int       `json:"step,omitempty"`
	Jump      *Jump     `json:"jump,omitempty"`
	NextIndex *int      `json:"next_index,omitempty"`
}

// Resolution is the outcome of applying one die value to one position
type Resolution struct {
	From      int   `json:"from"`
	To        int   `json:"to"`
	Entered   bool  `json:"entered,omitempty"`
	Forfeited bool  `json:"forfeited,omitempty"`
	Steps     []int `json:"steps,omitempty"`
	Jump      *Jump `json:"jump,omitempty"`
	Won       bool  `json:"won,omitempty"`
}

// TurnRecord is the complete, replayable record of one turn
type TurnRecord struct {
	Turn       int        `json:"turn"`
	PlayerID   int        `json:"player_id"`
	DieValue   int        `json:"die_value"`
	From       int        `json:"from"`
	To         int        `json:"to"`
	StepEvents []Event    `json:"step_events"`
	JumpEvent  *Jump      `json:"jump_event,omitempty"`
	Events     []Event    `json:"events"`
	TurnResult TurnResult `json:"turn_result"`
	NextIndex  int        `json:"next_index"`
	Message    string     `json:"message"`
}

// PlayerPosition is the per-player part of a snapshot
type PlayerPosition struct {
	ID       int `json:"id"`
	Position int `json:"position"`
}

// Snapshot is a read-only view of a game for initial render or resync
type Snapshot struct {
	Players            []PlayerPosition `json:"players"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	State              State            `json:"state"`
	WinnerID           int              `json:"winner_id,omitempty"`
	LayoutName         string           `json:"layout_name"`
	Turns              int              `json:"turns"`
}
