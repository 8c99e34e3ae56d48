package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Turn operations
	RequestRoll() (*TurnRecord, error)
	AwaitingRoll() bool

	// Game state
	Snapshot() Snapshot
	State() State
	IsGameOver() bool
	Players() []Player
	CurrentPlayer() Player
	Winner() (Player, bool)
	Layout() *Layout

	// History
	History() []TurnRecord
	LastTurn() *TurnRecord
}

// EventHandler receives every event of a turn, in order, while the turn resolves
type EventHandler func(Event)

// Option configures a Game
type Option func(*Game)

// WithEventHandler registers a handler invoked synchronously during resolution.
// Handlers run while the game is RESOLVING_MOVE, so a roll requested from a
// handler is rejected.
func WithEventHandler(h EventHandler) Option {
	return func(g *Game) {
		if h != nil {
			g.handlers = append(g.handlers, h)
		}
	}
}

// Game implements the Engine interface for one session.
// It is not safe for concurrent use; callers serialise access.
type Game struct {
	players  []Player
	current  int
	layout   *Layout
	state    State
	src      Source
	history  []TurnRecord
	winnerID int
	handlers []EventHandler
}

// NewGame creates a game for playerCount players on the given layout
func NewGame(playerCount int, layout *Layout, src Source, opts ...Option) (*Game, error) {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, fmt.Errorf("%w: player count must be between %d and %d, got %d",
			ErrInvalidConfiguration, MinPlayers, MaxPlayers, playerCount)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidConfiguration)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	players := make([]Player, playerCount)
	for i := range players {
		players[i] = Player{
			ID:         i + 1,
			Name:       fmt.Sprintf("Player %d", i+1),
			ColorToken: fmt.Sprintf("player-%d", i+1),
			Position:   OffBoard,
		}
	}

	g := &Game{
		players: players,
		layout:  layout.Clone(),
		state:   StateWaitingForRoll,
		src:     src,
		history: []TurnRecord{},
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// RequestRoll rolls the die for the current player and resolves the whole turn.
// The returned record lets the driver animate each step; the game state already
// reflects the final result.
func (g *Game) RequestRoll() (*TurnRecord, error) {
	if g.state != StateWaitingForRoll {
		return nil, fmt.Errorf("%w: cannot roll while %s", ErrInvalidState, g.state)
	}
	g.state = StateResolvingMove

	player := &g.players[g.current]
	die := RollDie(g.src)

	res, err := Resolve(player.Position, die, g.layout)
	if err != nil {
		g.state = StateWaitingForRoll
		return nil, err
	}

	next := (g.current + 1) % len(g.players)
	record := buildRecord(*player, len(g.history)+1, die, res, g.current, next)

	player.Position = res.To
	if res.Won {
		g.winnerID = player.ID
	} else {
		g.current = next
	}
	g.history = append(g.history, *record)

	// Handlers still see RESOLVING_MOVE; the final state is set even if one panics.
	final := StateWaitingForRoll
	if res.Won {
		final = StateGameOver
	}
	defer func() { g.state = final }()

	for _, ev := range record.Events {
		for _, h := range g.handlers {
			h(ev)
		}
	}

	return record, nil
}

// AwaitingRoll reports whether the current player may roll
func (g *Game) AwaitingRoll() bool {
	return g.state == StateWaitingForRoll
}

// Snapshot returns a read-only view of the game
func (g *Game) Snapshot() Snapshot {
	positions := make([]PlayerPosition, len(g.players))
	for i, p := range g.players {
		positions[i] = PlayerPosition{ID: p.ID, Position: p.Position}
	}
	return Snapshot{
		Players:            positions,
		CurrentPlayerIndex: g.current,
		State:              g.state,
		WinnerID:           g.winnerID,
		LayoutName:         g.layout.Name,
		Turns:              len(g.history),
	}
}

// State returns the current turn state
func (g *Game) State() State {
	return g.state
}

// IsGameOver returns whether a player has reached the last square
func (g *Game) IsGameOver() bool {
	return g.state == StateGameOver
}

// Players returns a copy of the players in turn order
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	copy(out, g.players)
	return out
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() Player {
	return g.players[g.current]
}

// Winner returns the winning player once the game is over
func (g *Game) Winner() (Player, bool) {
	if g.winnerID == 0 {
		return Player{}, false
	}
	return g.players[g.winnerID-1], true
}

// Layout returns a copy of the active layout
func (g *Game) Layout() *Layout {
	return g.layout.Clone()
}

// History returns every turn played so far
func (g *Game) History() []TurnRecord {
	out := make([]TurnRecord, len(g.history))
	copy(out, g.history)
	return out
}

// LastTurn returns the most recent turn, or nil if no turn was played
func (g *Game) LastTurn() *TurnRecord {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}

func buildRecord(p Player, turn, die int, res Resolution, current, next int) *TurnRecord {
	record := &TurnRecord{
		Turn:       turn,
		PlayerID:   p.ID,
		DieValue:   die,
		From:       res.From,
		To:         res.To,
		StepEvents: []Event{},
		Events:     []Event{},
		TurnResult: TurnContinue,
		NextIndex:  next,
	}

	switch {
	case res.Entered:
		record.Events = append(record.Events, Event{Type: EventPlayerEntered, PlayerID: p.ID, Square: EntrySquare})
		record.Message = fmt.Sprintf("%s rolled a %d and is unlocked! Moving to square %d.", p.Name, die, EntrySquare)
	case res.From == OffBoard:
		record.Message = fmt.Sprintf("%s needs a %d to start.", p.Name, EntryRoll)
	case res.Forfeited:
		record.Message = fmt.Sprintf("%s needs %d exactly to win!", p.Name, BoardSize-res.From)
	default:
		record.Message = fmt.Sprintf("%s moved to %d.", p.Name, res.To)
	}

	for i, sq := range res.Steps {
		ev := Event{Type: EventPlayerMoved, PlayerID: p.ID, Square: sq, Step: i + 1}
		record.StepEvents = append(record.StepEvents, ev)
		record.Events = append(record.Events, ev)
	}

	if res.Jump != nil {
		jump := *res.Jump
		record.JumpEvent = &jump
		record.Events = append(record.Events, Event{Type: EventPlayerJumped, PlayerID: p.ID, Square: jump.To, Jump: &jump})
		if jump.Kind == Ladder {
			record.Message = fmt.Sprintf("%s found a ladder to %d!", p.Name, jump.To)
		} else {
			record.Message = fmt.Sprintf("Oh no! %s slid down to %d!", p.Name, jump.To)
		}
	}

	if res.Won {
		record.TurnResult = TurnWin
		record.NextIndex = current
		record.Events = append(record.Events, Event{Type: EventGameWon, PlayerID: p.ID, Square: BoardSize})
		record.Message = fmt.Sprintf("%s wins!", p.Name)
		return record
	}

	nextIndex := next
	record.Events = append(record.Events, Event{Type: EventTurnAdvanced, PlayerID: p.ID, NextIndex: &nextIndex})
	return record
}
