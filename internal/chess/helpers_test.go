package chess

import (
	"sort"
	"testing"
)

// newTestGame builds a game from algebraic squares, e.g. {"e1": NewPiece(White, King)}.
func newTestGame(t *testing.T, turn Color, pieces map[string]Piece) *Game {
	t.Helper()
	g := &Game{turn: turn}
	for square, piece := range pieces {
		g.board.AddPiece(mustPos(t, square), piece)
	}
	return g
}

func mustPos(t *testing.T, square string) Position {
	t.Helper()
	pos, err := ParsePosition(square)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", square, err)
	}
	return pos
}

func mustMove(t *testing.T, from, to string) Move {
	t.Helper()
	return Move{Start: mustPos(t, from), End: mustPos(t, to)}
}

// destinations renders moves as sorted "e2e4" / "b7b8=Q" strings for comparison.
func destinations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

var (
	wK = NewPiece(White, King)
	wQ = NewPiece(White, Queen)
	wR = NewPiece(White, Rook)
	wB = NewPiece(White, Bishop)
	wN = NewPiece(White, Knight)
	wP = NewPiece(White, Pawn)
	bK = NewPiece(Black, King)
	bQ = NewPiece(Black, Queen)
	bR = NewPiece(Black, Rook)
	bN = NewPiece(Black, Knight)
	bP = NewPiece(Black, Pawn)
)
