package engine

import (
	"fmt"
	"sort"
)

// Layout is one concrete board: snake heads mapped to tails and ladder feet mapped to tops.
// A layout is immutable once a game has started with it.
type Layout struct {
	Name    string      `json:"name" yaml:"name"`
	Snakes  map[int]int `json:"snakes" yaml:"snakes"`
	Ladders map[int]int `json:"ladders" yaml:"ladders"`
}

// Validate checks the jump invariants of a layout
func (l *Layout) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: layout is nil", ErrInvalidLayout)
	}
	if len(l.Snakes)+len(l.Ladders) == 0 {
		return fmt.Errorf("%w: %s has no snakes or ladders", ErrInvalidLayout, l.label())
	}

	for _, head := range sortedKeys(l.Snakes) {
		tail := l.Snakes[head]
		if head < EntrySquare+1 || head > BoardSize-1 {
			return fmt.Errorf("%w: %s snake head %d must be between %d and %d",
				ErrInvalidLayout, l.label(), head, EntrySquare+1, BoardSize-1)
		}
		if tail < EntrySquare || tail >= head {
			return fmt.Errorf("%w: %s snake %d->%d must end on a lower square",
				ErrInvalidLayout, l.label(), head, tail)
		}
		if _, ok := l.Ladders[head]; ok {
			return fmt.Errorf("%w: %s square %d is both a snake head and a ladder foot",
				ErrInvalidLayout, l.label(), head)
		}
	}

	for _, foot := range sortedKeys(l.Ladders) {
		top := l.Ladders[foot]
		if foot < EntrySquare+1 || foot > BoardSize-1 {
			return fmt.Errorf("%w: %s ladder foot %d must be between %d and %d",
				ErrInvalidLayout, l.label(), foot, EntrySquare+1, BoardSize-1)
		}
		if top <= foot || top > BoardSize {
			return fmt.Errorf("%w: %s ladder %d->%d must end on a higher square",
				ErrInvalidLayout, l.label(), foot, top)
		}
	}

	// Destinations must never be sources, so a jump resolves exactly once
	for _, head := range sortedKeys(l.Snakes) {
		if l.isSource(l.Snakes[head]) {
			return fmt.Errorf("%w: %s snake %d->%d ends on another jump",
				ErrInvalidLayout, l.label(), head, l.Snakes[head])
		}
	}
	for _, foot := range sortedKeys(l.Ladders) {
		if l.isSource(l.Ladders[foot]) {
			return fmt.Errorf("%w: %s ladder %d->%d ends on another jump",
				ErrInvalidLayout, l.label(), foot, l.Ladders[foot])
		}
	}

	return nil
}

// JumpAt returns the jump triggered by landing on square, if any.
// Ladders are checked before snakes; a valid layout never has both.
func (l *Layout) JumpAt(square int) (Jump, bool) {
	if to, ok := l.Ladders[square]; ok {
		return Jump{From: square, To: to, Kind: Ladder}, true
	}
	if to, ok := l.Snakes[square]; ok {
		return Jump{From: square, To: to, Kind: Snake}, true
	}
	return Jump{}, false
}

// Clone returns a deep copy so callers cannot mutate a layout in use
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	c := &Layout{
		Name:    l.Name,
		Snakes:  make(map[int]int, len(l.Snakes)),
		Ladders: make(map[int]int, len(l.Ladders)),
	}
	for k, v := range l.Snakes {
		c.Snakes[k] = v
	}
	for k, v := range l.Ladders {
		c.Ladders[k] = v
	}
	return c
}

func (l *Layout) isSource(square int) bool {
	_, snake := l.Snakes[square]
	_, ladder := l.Ladders[square]
	return snake || ladder
}

func (l *Layout) label() string {
	if l.Name == "" {
		return "layout"
	}
	return fmt.Sprintf("layout %q", l.Name)
}

// sortedKeys keeps validation errors deterministic
func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
