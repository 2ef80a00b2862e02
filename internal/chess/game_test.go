package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewGame(t *testing.T) {
	g := NewGame()
	if g.Turn() != White {
		t.Errorf("Turn() = %v; want WHITE", g.Turn())
	}
	board := g.Board()
	if !board.Equal(NewBoard()) {
		t.Error("new game is not in the starting position")
	}
}

func TestValidMovesEmptySquare(t *testing.T) {
	g := NewGame()
	for row := 3; row <= 6; row++ {
		for col := 1; col <= 8; col++ {
			moves, ok := g.ValidMoves(NewPosition(row, col))
			if ok || moves != nil {
				t.Errorf("ValidMoves(%v) = (%v, %v); want (nil, false)", NewPosition(row, col), moves, ok)
			}
		}
	}
}

func TestValidMovesPresentButStuck(t *testing.T) {
	g := NewGame()
	moves, ok := g.ValidMoves(mustPos(t, "a1"))
	if !ok {
		t.Fatal("ValidMoves(a1) reported no piece")
	}
	if moves == nil || len(moves) != 0 {
		t.Errorf("ValidMoves(a1) = %#v; want empty non-nil slice", moves)
	}
}

func TestOpeningMoveCount(t *testing.T) {
	g := NewGame()
	if got := len(g.LegalMoves(White)); got != 20 {
		t.Errorf("White has %d legal moves; want 20", got)
	}

	if err := g.MakeMove(mustMove(t, "e2", "e4")); err != nil {
		t.Fatalf("MakeMove(e2e4): %v", err)
	}
	if got := len(g.LegalMoves(Black)); got != 20 {
		t.Errorf("Black has %d legal moves; want 20", got)
	}
}

func TestPinnedPieceStaysOnLine(t *testing.T) {
	g := newTestGame(t, White, map[string]Piece{
		"e1": wK, "e2": wR, "e8": bR, "a8": bK,
	})
	moves, ok := g.ValidMoves(mustPos(t, "e2"))
	if !ok {
		t.Fatal("no piece on e2")
	}
	want := []string{"e2e3", "e2e4", "e2e5", "e2e6", "e2e7", "e2e8"}
	if diff := cmp.Diff(want, destinations(moves)); diff != "" {
		t.Errorf("pinned rook moves mismatch (-want +got):\n%s", diff)
	}
}

func TestKingCannotStepIntoCheck(t *testing.T) {
	g := newTestGame(t, White, map[string]Piece{
		"e1": wK, "d8": bR, "h8": bK,
	})
	moves, _ := g.ValidMoves(mustPos(t, "e1"))
	want := []string{"e1e2", "e1f1", "e1f2"}
	if diff := cmp.Diff(want, destinations(moves)); diff != "" {
		t.Errorf("king moves mismatch (-want +got):\n%s", diff)
	}
}

func TestKingMayCaptureUndefendedAttacker(t *testing.T) {
	g := newTestGame(t, White, map[string]Piece{
		"e1": wK, "e2": bQ, "e5": bR, "h8": bK,
	})
	moves, _ := g.ValidMoves(mustPos(t, "e1"))
	for _, m := range moves {
		if m.End == mustPos(t, "e2") {
			t.Error("king captured a defended queen")
		}
	}

	g = newTestGame(t, White, map[string]Piece{
		"e1": wK, "e2": bQ, "h8": bK,
	})
	moves, _ = g.ValidMoves(mustPos(t, "e1"))
	if diff := cmp.Diff([]string{"e1e2"}, destinations(moves)); diff != "" {
		t.Errorf("king moves mismatch (-want +got):\n%s", diff)
	}
}

func TestValidMovesRestoresBoard(t *testing.T) {
	g := newTestGame(t, White, map[string]Piece{
		"e1": wK, "e2": wR, "e8": bR, "a8": bK, "d3": bN, "c4": wB,
	})
	before := g.Board()
	for _, sq := range []string{"e1", "e2", "c4", "e8", "d3", "a8"} {
		g.ValidMoves(mustPos(t, sq))
	}
	g.IsInCheckmate(White)
	g.IsInStalemate(Black)
	after := g.Board()
	if !after.Equal(&before) {
		t.Error("board changed after legality queries")
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	positions := []map[string]Piece{
		{"e1": wK, "e2": wR, "e8": bR, "a8": bK, "d3": bN, "c4": wB},
		{"e1": wK, "d2": wP, "f2": wP, "b4": bQ, "h4": bQ, "e8": bK, "c6": bN},
		{"g1": wK, "g2": wP, "h2": wP, "f3": wN, "a8": bK, "a1": bR, "b2": bQ},
	}
	for i, pieces := range positions {
		for _, color := range []Color{White, Black} {
			g := newTestGame(t, color, pieces)
			for _, move := range g.LegalMoves(color) {
				trial := *g
				if err := trial.MakeMove(move); err != nil {
					t.Errorf("position %d: legal move %s rejected: %v", i, move, err)
					continue
				}
				if trial.IsInCheck(color) {
					t.Errorf("position %d: %s leaves %v in check", i, move, color)
				}
			}
		}
	}
}

func TestMakeMove(t *testing.T) {
	g := NewGame()
	if err := g.MakeMove(mustMove(t, "g1", "f3")); err != nil {
		t.Fatalf("MakeMove(g1f3): %v", err)
	}
	if g.Turn() != Black {
		t.Errorf("Turn() = %v after White's move; want BLACK", g.Turn())
	}
	if _, ok := g.Piece(mustPos(t, "g1")); ok {
		t.Error("g1 should be empty")
	}
	if got, _ := g.Piece(mustPos(t, "f3")); got != wN {
		t.Errorf("f3 holds %v; want white knight", got)
	}
}

func TestMakeMoveCapture(t *testing.T) {
	g := newTestGame(t, Black, map[string]Piece{
		"e1": wK, "d4": wQ, "e8": bK, "d7": bR,
	})
	if err := g.MakeMove(mustMove(t, "d7", "d4")); err != nil {
		t.Fatalf("MakeMove(d7d4): %v", err)
	}
	if got, _ := g.Piece(mustPos(t, "d4")); got != bR {
		t.Errorf("d4 holds %v; want black rook", got)
	}
	if g.Turn() != White {
		t.Errorf("Turn() = %v; want WHITE", g.Turn())
	}
}

func TestMakeMoveErrors(t *testing.T) {
	tests := []struct {
		name   string
		move   func(t *testing.T) Move
		reason string
	}{
		{"empty start square", func(t *testing.T) Move { return mustMove(t, "e4", "e5") }, ReasonNoPiece},
		{"not a legal destination", func(t *testing.T) Move { return mustMove(t, "e2", "e5") }, ReasonIllegal},
		{"opponent's piece", func(t *testing.T) Move { return mustMove(t, "e7", "e5") }, ReasonWrongTurn},
		{"promotion on a normal move", func(t *testing.T) Move {
			m := mustMove(t, "e2", "e4")
			m.Promotion = Queen
			return m
		}, ReasonIllegal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			err := g.MakeMove(tt.move(t))
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("MakeMove error = %v; want ErrInvalidMove", err)
			}
			var invalid *InvalidMoveError
			if !errors.As(err, &invalid) {
				t.Fatalf("error %T is not *InvalidMoveError", err)
			}
			if invalid.Reason != tt.reason {
				t.Errorf("Reason = %q; want %q", invalid.Reason, tt.reason)
			}
			if g.Turn() != White {
				t.Error("failed move flipped the turn")
			}
			board := g.Board()
			if !board.Equal(NewBoard()) {
				t.Error("failed move changed the board")
			}
		})
	}
}

func TestPromotion(t *testing.T) {
	g := newTestGame(t, White, map[string]Piece{
		"a1": wK, "b7": wP, "h1": bK,
	})
	moves, _ := g.ValidMoves(mustPos(t, "b7"))
	if len(moves) != 4 {
		t.Fatalf("pawn on b7 has %d moves; want 4", len(moves))
	}
	seen := map[PieceType]bool{}
	for _, m := range moves {
		if m.End != mustPos(t, "b8") {
			t.Errorf("unexpected destination %v", m.End)
		}
		seen[m.Promotion] = true
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !seen[pt] {
			t.Errorf("missing %v promotion", pt)
		}
	}

	t.Run("plain move rejected", func(t *testing.T) {
		trial := *g
		if err := trial.MakeMove(mustMove(t, "b7", "b8")); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("MakeMove(b7b8) without promotion error = %v; want ErrInvalidMove", err)
		}
	})

	t.Run("knight promotion", func(t *testing.T) {
		trial := *g
		move := mustMove(t, "b7", "b8")
		move.Promotion = Knight
		if err := trial.MakeMove(move); err != nil {
			t.Fatalf("MakeMove(b7b8=N): %v", err)
		}
		if got, _ := trial.Piece(mustPos(t, "b8")); got != wN {
			t.Errorf("b8 holds %v; want white knight", got)
		}
		if !trial.board.IsEmpty(mustPos(t, "b7")) {
			t.Error("b7 should be empty after promotion")
		}
	})
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	for _, step := range [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}} {
		if err := g.MakeMove(mustMove(t, step[0], step[1])); err != nil {
			t.Fatalf("MakeMove(%s%s): %v", step[0], step[1], err)
		}
	}

	if !g.IsInCheck(White) {
		t.Error("White should be in check")
	}
	if !g.IsInCheckmate(White) {
		t.Error("White should be checkmated")
	}
	if g.IsInStalemate(White) {
		t.Error("checkmate reported as stalemate")
	}
	if g.IsInCheckmate(Black) || g.IsInCheck(Black) {
		t.Error("Black is neither in check nor mated")
	}
	if moves := g.LegalMoves(White); len(moves) != 0 {
		t.Errorf("White still has moves: %v", destinations(moves))
	}
	if err := g.MakeMove(mustMove(t, "a2", "a3")); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("move after mate error = %v; want ErrInvalidMove", err)
	}
}

func TestBackRankMate(t *testing.T) {
	g := newTestGame(t, Black, map[string]Piece{
		"g1": wK, "a8": wR, "g8": bK, "f7": bP, "g7": bP, "h7": bP,
	})
	if !g.IsInCheckmate(Black) {
		t.Error("Black should be checkmated")
	}
	if g.IsInStalemate(Black) {
		t.Error("checkmate reported as stalemate")
	}
}

func TestStalemate(t *testing.T) {
	g := newTestGame(t, Black, map[string]Piece{
		"a8": bK, "b6": wQ, "c7": wK,
	})
	if g.IsInCheck(Black) {
		t.Fatal("Black should not be in check")
	}
	if !g.IsInStalemate(Black) {
		t.Error("Black should be stalemated")
	}
	if g.IsInCheckmate(Black) {
		t.Error("stalemate reported as checkmate")
	}
	if g.IsInStalemate(White) {
		t.Error("White has moves and is not stalemated")
	}
}

func TestCheckmateAndStalemateExclusive(t *testing.T) {
	positions := []map[string]Piece{
		{"a8": bK, "b6": wQ, "c7": wK},
		{"g1": wK, "a8": wR, "g8": bK, "f7": bP, "g7": bP, "h7": bP},
		{"e1": wK, "e8": bK},
		{"h1": wK, "g3": bQ, "f3": bK},
	}
	for i, pieces := range positions {
		for _, color := range []Color{White, Black} {
			g := newTestGame(t, color, pieces)
			if g.IsInCheckmate(color) && g.IsInStalemate(color) {
				t.Errorf("position %d: %v is both mated and stalemated", i, color)
			}
		}
	}
}

func TestIsInCheckWithoutKing(t *testing.T) {
	g := newTestGame(t, White, map[string]Piece{"d1": wQ, "d8": bQ})
	if g.IsInCheck(White) || g.IsInCheck(Black) {
		t.Error("a side without a king cannot be in check")
	}
}

func TestGameEqual(t *testing.T) {
	a, b := NewGame(), NewGame()
	if !a.Equal(b) {
		t.Fatal("fresh games should be equal")
	}
	b.SetTurn(Black)
	if a.Equal(b) {
		t.Error("games with different turns reported equal")
	}
}
