package engine

import (
	"fmt"
	"strings"
)

// Tier is a named difficulty level holding a pool of board layouts.
// A new game picks one board from the pool uniformly at random.
type Tier struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Boards      []*Layout `json:"boards" yaml:"boards"`
}

// ValidateTier validates a tier and every board in its pool
func ValidateTier(tier *Tier) error {
	if tier == nil {
		return fmt.Errorf("%w: tier is nil", ErrInvalidLayout)
	}
	if strings.TrimSpace(tier.Name) == "" {
		return fmt.Errorf("%w: tier name is required", ErrInvalidLayout)
	}
	if len(tier.Boards) == 0 {
		return fmt.Errorf("%w: tier %q has no boards", ErrInvalidLayout, tier.Name)
	}

	seen := make(map[string]bool, len(tier.Boards))
	for i, board := range tier.Boards {
		if err := board.Validate(); err != nil {
			return fmt.Errorf("tier %q board %d: %w", tier.Name, i+1, err)
		}
		if board.Name == "" {
			continue
		}
		if seen[board.Name] {
			return fmt.Errorf("%w: tier %q has duplicate board name %q", ErrInvalidLayout, tier.Name, board.Name)
		}
		seen[board.Name] = true
	}

	return nil
}

// PickLayout draws one board from the tier's pool uniformly at random
func PickLayout(tier *Tier, src Source) (*Layout, error) {
	if tier == nil || len(tier.Boards) == 0 {
		return nil, fmt.Errorf("%w: tier has no boards", ErrInvalidConfiguration)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidConfiguration)
	}

	idx := src.Intn(len(tier.Boards))
	if idx < 0 || idx >= len(tier.Boards) {
		return nil, fmt.Errorf("%w: board index %d out of range", ErrInvalidConfiguration, idx)
	}

	layout := tier.Boards[idx].Clone()
	if layout.Name == "" {
		layout.Name = fmt.Sprintf("%s %d", tier.Name, idx+1)
	}
	return layout, nil
}

// Clone returns a deep copy of the tier
func (t *Tier) Clone() *Tier {
	if t == nil {
		return nil
	}
	out := &Tier{Name: t.Name, Description: t.Description, Boards: make([]*Layout, len(t.Boards))}
	for i, b := range t.Boards {
		out.Boards[i] = b.Clone()
	}
	return out
}
