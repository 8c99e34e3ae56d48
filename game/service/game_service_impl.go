package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	tiers    TierManager
	logger   *zap.Logger
	newSeed  func() (int64, error)

	// Last-access times are written under the write lock; readers of
	// Session fields hold at least the read lock.
	mu sync.RWMutex
}

// Option configures the game service
type Option func(*gameServiceImpl)

// WithLogger sets the structured logger used for session and turn logs
func WithLogger(logger *zap.Logger) Option {
	return func(s *gameServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeedGenerator replaces the seed generator used when a session is started without a seed
func WithSeedGenerator(fn func() (int64, error)) Option {
	return func(s *gameServiceImpl) {
		if fn != nil {
			s.newSeed = fn
		}
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, tiers TierManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		tiers:    tiers,
		logger:   zap.NewNop(),
		newSeed:  engine.NewSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession validates the request, picks a board from the tier and starts a new game
func (s *gameServiceImpl) StartSession(ctx context.Context, playerCount int, tier string, seed *int64) (*SessionInfo, error) {
	if playerCount < engine.MinPlayers || playerCount > engine.MaxPlayers {
		return nil, fmt.Errorf("%w: player count must be between %d and %d, got %d",
			engine.ErrInvalidConfiguration, engine.MinPlayers, engine.MaxPlayers, playerCount)
	}
	if strings.TrimSpace(tier) == "" {
		return nil, fmt.Errorf("%w: tier is required", engine.ErrInvalidConfiguration)
	}

	t, err := s.tiers.LoadTier(tier)
	if err != nil {
		if errors.Is(err, ErrTierNotFound) {
			return nil, fmt.Errorf("%w: unknown tier %q%s", engine.ErrInvalidConfiguration, tier, s.availableTiers())
		}
		return nil, fmt.Errorf("failed to load tier %s: %w", tier, err)
	}

	var gameSeed int64
	if seed != nil {
		gameSeed = *seed
	} else if gameSeed, err = s.newSeed(); err != nil {
		return nil, fmt.Errorf("failed to generate seed: %w", err)
	}

	src := engine.NewSource(gameSeed)
	layout, err := engine.PickLayout(t, src)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var sessionID string
	game, err := engine.NewGame(playerCount, layout, src, engine.WithEventHandler(func(ev engine.Event) {
		s.logger.Debug("game event",
			zap.String("session_id", sessionID),
			zap.String("type", string(ev.Type)),
			zap.Int("player_id", ev.PlayerID),
			zap.Int("square", ev.Square))
	}))
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create("", game, t.Name, gameSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sessionID = sess.ID

	s.logger.Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("tier", t.Name),
		zap.String("layout", layout.Name),
		zap.Int("players", playerCount),
		zap.Int64("seed", gameSeed))

	return toSessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return toSessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, toSessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// RequestRoll rolls the die for the current player of a session and resolves the turn
func (s *gameServiceImpl) RequestRoll(ctx context.Context, sessionID string) (*RollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	record, err := sess.Game.RequestRoll()
	if err != nil {
		s.logger.Debug("roll rejected", zap.String("session_id", sess.ID), zap.Error(err))
		return nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}

	snap := sess.Game.Snapshot()
	result := &RollResult{
		SessionID: sess.ID,
		Turn:      record,
		Snapshot:  snap,
		GameOver:  sess.Game.IsGameOver(),
		WinnerID:  snap.WinnerID,
		Message:   record.Message,
	}

	s.logger.Info("turn resolved",
		zap.String("session_id", sess.ID),
		zap.Int("turn", record.Turn),
		zap.Int("player_id", record.PlayerID),
		zap.Int("die", record.DieValue),
		zap.Int("from", record.From),
		zap.Int("to", record.To),
		zap.String("result", string(record.TurnResult)))

	return result, nil
}

// GetSnapshot retrieves the current game snapshot
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	snap := sess.Game.Snapshot()
	return &snap, nil
}

// GetTurnHistory returns paginated turn history
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return paginate(sess.Game.History(), opts), nil
}

// ListTiers returns the available difficulty tiers
func (s *gameServiceImpl) ListTiers(ctx context.Context) ([]*TierInfo, error) {
	return s.tiers.ListTiers()
}

// LoadTier loads a specific tier
func (s *gameServiceImpl) LoadTier(ctx context.Context, name string) (*engine.Tier, error) {
	return s.tiers.LoadTier(name)
}

// SaveTier validates and stores a tier
func (s *gameServiceImpl) SaveTier(ctx context.Context, name string, tier *engine.Tier) error {
	if err := s.tiers.SaveTier(name, tier); err != nil {
		return err
	}
	s.logger.Info("tier saved", zap.String("tier", name), zap.Int("boards", len(tier.Boards)))
	return nil
}

func (s *gameServiceImpl) availableTiers() string {
	tiers, err := s.tiers.ListTiers()
	if err != nil || len(tiers) == 0 {
		return ""
	}
	ids := make([]string, 0, len(tiers))
	for _, t := range tiers {
		ids = append(ids, t.ID)
	}
	return fmt.Sprintf(". Available tiers: %v", ids)
}

func toSessionInfo(sess *Session) *SessionInfo {
	players := sess.Game.Players()
	return &SessionInfo{
		ID:             sess.ID,
		Tier:           sess.Tier,
		Seed:           sess.Seed,
		PlayerCount:    len(players),
		Players:        players,
		Layout:         sess.Game.Layout(),
		Snapshot:       sess.Game.Snapshot(),
		LastTurn:       sess.Game.LastTurn(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
}

func paginate(history []engine.TurnRecord, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	turns := []engine.TurnRecord{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				turns = append(turns, history[i])
			}
		} else {
			turns = append(turns, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}
