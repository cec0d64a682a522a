package model

import "errors"

var (
	// ErrKingMissing means a side has no king on the board. During play this is a bug in
	// Apply/Undo, never bad input, and the engine panics with it.
	ErrKingMissing   = errors.New("king missing from board")
	ErrExtraKing     = errors.New("more than one king for a side")
	ErrInvalidTurn   = errors.New("invalid side to move")
	ErrNothingToUndo = errors.New("undo stack is empty")

	ErrOpponentInCheck = errors.New("side not to move is in check")
)
