package engine

import "fmt"

// Resolve applies one die value to a position on the given layout.
// It is a pure function: the same inputs always give the same resolution.
func Resolve(position, die int, layout *Layout) (Resolution, error) {
	if die < 1 || die > DieSides {
		return Resolution{}, fmt.Errorf("%w: %d", ErrInvalidDie, die)
	}
	if position < OffBoard || position >= BoardSize {
		return Resolution{}, fmt.Errorf("%w: position %d cannot move", ErrInvalidState, position)
	}

	res := Resolution{From: position, To: position}

	// Off-board tokens only enter on an exact 6, without jump resolution
	if position == OffBoard {
		if die == EntryRoll {
			res.To = EntrySquare
			res.Entered = true
		}
		return res, nil
	}

	target := position + die
	if target > BoardSize {
		res.Forfeited = true
		return res, nil
	}

	res.Steps = make([]int, 0, die)
	for sq := position + 1; sq <= target; sq++ {
		res.Steps = append(res.Steps, sq)
	}
	res.To = target

	if target == BoardSize {
		res.Won = true
		return res, nil
	}

	if layout != nil {
		if jump, ok := layout.JumpAt(target); ok {
			res.Jump = &jump
			res.To = jump.To
			// A ladder reaching the last square wins as well
			res.Won = jump.To == BoardSize
		}
	}

	return res, nil
}
