package chess

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is the single error kind MakeMove returns. Use errors.Is to test for it.
var ErrInvalidMove = errors.New("invalid move")

// Reasons carried by InvalidMoveError.
const (
	ReasonNoPiece   = "no piece at start position"
	ReasonIllegal   = "move is not legal for this piece"
	ReasonWrongTurn = "not this side's turn"
)

type InvalidMoveError struct {
	Move   Move
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %s: %s", e.Move, e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidMove
}

func invalidMove(move Move, reason string) error {
	return &InvalidMoveError{Move: move, Reason: reason}
}
