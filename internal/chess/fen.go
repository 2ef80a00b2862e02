package chess

import (
	"fmt"

	nchess "github.com/notnil/chess"
)

var toNotnil = map[Piece]nchess.Piece{
	{White, King}:   nchess.WhiteKing,
	{White, Queen}:  nchess.WhiteQueen,
	{White, Rook}:   nchess.WhiteRook,
	{White, Bishop}: nchess.WhiteBishop,
	{White, Knight}: nchess.WhiteKnight,
	{White, Pawn}:   nchess.WhitePawn,
	{Black, King}:   nchess.BlackKing,
	{Black, Queen}:  nchess.BlackQueen,
	{Black, Rook}:   nchess.BlackRook,
	{Black, Bishop}: nchess.BlackBishop,
	{Black, Knight}: nchess.BlackKnight,
	{Black, Pawn}:   nchess.BlackPawn,
}

var fromNotnil = func() map[nchess.Piece]Piece {
	m := make(map[nchess.Piece]Piece, len(toNotnil))
	for ours, theirs := range toNotnil {
		m[theirs] = ours
	}
	return m
}()

func notnilSquare(pos Position) nchess.Square {
	return nchess.Square((pos.Row-1)*boardSize + (pos.Col - 1))
}

// FEN describes the position in Forsyth-Edwards Notation. Castling and en passant
// fields are always "-" because neither rule exists here.
func (g *Game) FEN() string {
	squares := make(map[nchess.Square]nchess.Piece, 32)
	g.board.Each(func(pos Position, piece Piece) {
		squares[notnilSquare(pos)] = toNotnil[piece]
	})
	side := "w"
	if g.turn == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", nchess.NewBoard(squares).String(), side)
}

// GameFromFEN builds a game from the placement and side-to-move fields of fen.
// Remaining fields are validated but otherwise ignored.
func GameFromFEN(fen string) (*Game, error) {
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse FEN %q: %w", fen, err)
	}
	position := nchess.NewGame(opt).Position()

	g := &Game{turn: White}
	if position.Turn() == nchess.Black {
		g.turn = Black
	}
	for sq, p := range position.Board().SquareMap() {
		piece, ok := fromNotnil[p]
		if !ok {
			continue
		}
		pos := NewPosition(int(sq.Rank())+1, int(sq.File())+1)
		g.board.AddPiece(pos, piece)
	}
	return g, nil
}
