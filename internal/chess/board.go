package chess

// Board is an 8x8 grid of optional pieces. The zero Board is empty.
type Board struct {
	squares [boardSize * boardSize]Piece
}

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Piece returns the occupant of pos and whether there is one.
func (b *Board) Piece(pos Position) (Piece, bool) {
	p := b.squares[pos.index()]
	return p, !p.IsEmpty()
}

func (b *Board) IsEmpty(pos Position) bool {
	return b.squares[pos.index()].IsEmpty()
}

// AddPiece overwrites whatever is on pos. Adding NoPiece clears the square.
func (b *Board) AddPiece(pos Position, piece Piece) {
	b.squares[pos.index()] = piece
}

func (b *Board) RemovePiece(pos Position) {
	b.squares[pos.index()] = NoPiece
}

// Reset puts every piece on its starting square and clears the rest of the board.
func (b *Board) Reset() {
	b.squares = [boardSize * boardSize]Piece{}
	for col := 1; col <= boardSize; col++ {
		b.AddPiece(NewPosition(1, col), NewPiece(White, backRank[col-1]))
		b.AddPiece(NewPosition(2, col), NewPiece(White, Pawn))
		b.AddPiece(NewPosition(boardSize-1, col), NewPiece(Black, Pawn))
		b.AddPiece(NewPosition(boardSize, col), NewPiece(Black, backRank[col-1]))
	}
}

// Equal reports whether both boards hold the same piece on every square.
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.squares == other.squares
}

// Each calls fn for every occupied square, row 1 first.
func (b *Board) Each(fn func(pos Position, piece Piece)) {
	for i, p := range b.squares {
		if p.IsEmpty() {
			continue
		}
		fn(Position{Row: i/boardSize + 1, Col: i%boardSize + 1}, p)
	}
}

// find returns the first square holding piece.
func (b *Board) find(piece Piece) (Position, bool) {
	for i, p := range b.squares {
		if p == piece {
			return Position{Row: i/boardSize + 1, Col: i%boardSize + 1}, true
		}
	}
	return Position{}, false
}

// piecesOf lists the squares occupied by color.
func (b *Board) piecesOf(color Color) []Position {
	positions := make([]Position, 0, 16)
	b.Each(func(pos Position, piece Piece) {
		if piece.Color == color {
			positions = append(positions, pos)
		}
	})
	return positions
}
