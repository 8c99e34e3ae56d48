package engine

import "errors"

var (
	// ErrInvalidConfiguration is returned for a bad player count or an unknown tier
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidLayout is returned for board data that breaks the jump rules
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrInvalidState is returned when a roll is requested outside WAITING_FOR_ROLL
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidDie is returned when a source produces a value outside 1..6
	ErrInvalidDie = errors.New("invalid die value")
)
