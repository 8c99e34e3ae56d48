package engine

import "sort"

// BoardStats summarises the jumps of a layout
type BoardStats struct {
	Snakes        int  `json:"snakes"`
	Ladders       int  `json:"ladders"`
	LongestSnake  Jump `json:"longest_snake"`
	LongestLadder Jump `json:"longest_ladder"`
	SquaresLost   int  `json:"squares_lost"`
	SquaresGained int  `json:"squares_gained"`
}

// AnalyzeLayout computes jump statistics for a layout
func AnalyzeLayout(layout *Layout) BoardStats {
	var stats BoardStats
	if layout == nil {
		return stats
	}

	for _, head := range sortedKeys(layout.Snakes) {
		tail := layout.Snakes[head]
		stats.Snakes++
		stats.SquaresLost += head - tail
		if head-tail > stats.LongestSnake.From-stats.LongestSnake.To {
			stats.LongestSnake = Jump{From: head, To: tail, Kind: Snake}
		}
	}
	for _, foot := range sortedKeys(layout.Ladders) {
		top := layout.Ladders[foot]
		stats.Ladders++
		stats.SquaresGained += top - foot
		if top-foot > stats.LongestLadder.To-stats.LongestLadder.From {
			stats.LongestLadder = Jump{From: foot, To: top, Kind: Ladder}
		}
	}

	return stats
}

// Jumps returns every jump of a layout ordered by starting square
func Jumps(layout *Layout) []Jump {
	if layout == nil {
		return nil
	}
	out := make([]Jump, 0, len(layout.Snakes)+len(layout.Ladders))
	for head, tail := range layout.Snakes {
		out = append(out, Jump{From: head, To: tail, Kind: Snake})
	}
	for foot, top := range layout.Ladders {
		out = append(out, Jump{From: foot, To: top, Kind: Ladder})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

// DistanceToGoal returns the number of squares left to reach the last square.
// Off-board players also need the entry roll first.
func DistanceToGoal(position int) int {
	if position <= OffBoard {
		return BoardSize - EntrySquare
	}
	if position >= BoardSize {
		return 0
	}
	return BoardSize - position
}

// CanWinWith reports whether a die value lands exactly on the last square
func CanWinWith(position, die int) bool {
	return position > OffBoard && position+die == BoardSize
}
