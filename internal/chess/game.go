package chess

// Game owns a board and the side to move. A Game is not safe for concurrent use:
// ValidMoves temporarily rearranges the board while it tests candidates, so every
// access to one Game has to be serialized by the caller.
type Game struct {
	board Board
	turn  Color
}

// NewGame returns a game in the starting position with White to move.
func NewGame() *Game {
	g := &Game{turn: White}
	g.board.Reset()
	return g
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) SetTurn(color Color) {
	g.turn = color
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

// SetBoard replaces the game's board with a copy of b.
func (g *Game) SetBoard(b Board) {
	g.board = b
}

func (g *Game) Piece(pos Position) (Piece, bool) {
	return g.board.Piece(pos)
}

// ValidMoves returns the legal moves of the piece on pos. The boolean is false when
// the square is empty; a piece with no legal moves yields an empty, non-nil slice.
func (g *Game) ValidMoves(pos Position) ([]Move, bool) {
	piece, ok := g.board.Piece(pos)
	if !ok {
		return nil, false
	}
	candidates := piece.PieceMoves(&g.board, pos)
	legal := make([]Move, 0, len(candidates))
	for _, move := range candidates {
		if g.keepsKingSafe(move, piece) {
			legal = append(legal, move)
		}
	}
	return legal, true
}

// keepsKingSafe plays move on the board, asks whether the mover is in check and puts
// both touched squares back before returning.
func (g *Game) keepsKingSafe(move Move, mover Piece) bool {
	captured := g.board.squares[move.End.index()]
	defer func() {
		g.board.AddPiece(move.Start, mover)
		g.board.AddPiece(move.End, captured)
	}()

	g.board.RemovePiece(move.Start)
	g.board.AddPiece(move.End, mover)
	return !g.IsInCheck(mover.Color)
}

// MakeMove applies move for the side to move. Any illegal attempt returns an error
// wrapping ErrInvalidMove and leaves the game untouched.
func (g *Game) MakeMove(move Move) error {
	piece, ok := g.board.Piece(move.Start)
	if !ok {
		return invalidMove(move, ReasonNoPiece)
	}
	legal, _ := g.ValidMoves(move.Start)
	if !containsMove(legal, move) {
		return invalidMove(move, ReasonIllegal)
	}
	if piece.Color != g.turn {
		return invalidMove(move, ReasonWrongTurn)
	}

	if move.Promotion.Valid() {
		piece = NewPiece(piece.Color, move.Promotion)
	}
	g.board.RemovePiece(move.Start)
	g.board.AddPiece(move.End, piece)
	g.turn = g.turn.Opposite()
	return nil
}

// IsInCheck reports whether any opposing piece attacks color's king. A side with no
// king on the board is never in check.
func (g *Game) IsInCheck(color Color) bool {
	kingPos, found := g.board.find(NewPiece(color, King))
	if !found {
		return false
	}
	for i, p := range g.board.squares {
		if p.IsEmpty() || p.Color == color {
			continue
		}
		from := Position{Row: i/boardSize + 1, Col: i%boardSize + 1}
		for _, move := range p.PieceMoves(&g.board, from) {
			if move.End == kingPos {
				return true
			}
		}
	}
	return false
}

func (g *Game) IsInCheckmate(color Color) bool {
	return g.IsInCheck(color) && !g.hasLegalMove(color)
}

func (g *Game) IsInStalemate(color Color) bool {
	return !g.IsInCheck(color) && !g.hasLegalMove(color)
}

func (g *Game) hasLegalMove(color Color) bool {
	for _, pos := range g.board.piecesOf(color) {
		if moves, _ := g.ValidMoves(pos); len(moves) > 0 {
			return true
		}
	}
	return false
}

// LegalMoves collects the legal moves of every piece belonging to color.
func (g *Game) LegalMoves(color Color) []Move {
	var all []Move
	for _, pos := range g.board.piecesOf(color) {
		moves, _ := g.ValidMoves(pos)
		all = append(all, moves...)
	}
	return all
}

// Equal reports whether both games have the same board and side to move.
func (g *Game) Equal(other *Game) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.turn == other.turn && g.board.Equal(&other.board)
}
