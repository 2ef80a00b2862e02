package chess

type direction struct {
	dRow, dCol int
}

var (
	orthogonalDirs = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs      = append(append([]direction{}, diagonalDirs...), orthogonalDirs...)
	knightOffsets  = []direction{{1, 2}, {2, 1}, {1, -2}, {-2, 1}, {-1, 2}, {2, -1}, {-1, -2}, {-2, -1}}
	kingOffsets    = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

var promotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

// PieceMoves returns the pseudo-legal moves of p standing on pos. It does not look at
// whether the move leaves p's own king in check and never modifies board.
func (p Piece) PieceMoves(board *Board, pos Position) []Move {
	switch p.Type {
	case Rook:
		return slidingMoves(board, pos, p.Color, orthogonalDirs)
	case Bishop:
		return slidingMoves(board, pos, p.Color, diagonalDirs)
	case Queen:
		return slidingMoves(board, pos, p.Color, queenDirs)
	case Knight:
		return steppingMoves(board, pos, p.Color, knightOffsets)
	case King:
		return steppingMoves(board, pos, p.Color, kingOffsets)
	case Pawn:
		return pawnMoves(board, pos, p.Color)
	}
	return nil
}

func slidingMoves(board *Board, from Position, color Color, dirs []direction) []Move {
	moves := make([]Move, 0, 14)
	for _, dir := range dirs {
		to := from.offset(dir.dRow, dir.dCol)
		for to.Valid() {
			occupant, occupied := board.Piece(to)
			if occupied && occupant.Color == color {
				break
			}
			moves = append(moves, Move{Start: from, End: to})
			if occupied {
				break
			}
			to = to.offset(dir.dRow, dir.dCol)
		}
	}
	return moves
}

func steppingMoves(board *Board, from Position, color Color, offsets []direction) []Move {
	moves := make([]Move, 0, len(offsets))
	for _, off := range offsets {
		to := from.offset(off.dRow, off.dCol)
		if !to.Valid() {
			continue
		}
		if occupant, occupied := board.Piece(to); occupied && occupant.Color == color {
			continue
		}
		moves = append(moves, Move{Start: from, End: to})
	}
	return moves
}

func pawnDirection(color Color) int {
	if color == White {
		return 1
	}
	return -1
}

func pawnStartRow(color Color) int {
	if color == White {
		return 2
	}
	return boardSize - 1
}

func promotionRow(color Color) int {
	if color == White {
		return boardSize
	}
	return 1
}

func pawnMoves(board *Board, from Position, color Color) []Move {
	moves := make([]Move, 0, 4)
	dir := pawnDirection(color)

	forward := from.offset(dir, 0)
	if forward.Valid() && board.IsEmpty(forward) {
		moves = appendPawnMove(moves, from, forward, color)
		if from.Row == pawnStartRow(color) {
			double := from.offset(2*dir, 0)
			if double.Valid() && board.IsEmpty(double) {
				moves = append(moves, Move{Start: from, End: double})
			}
		}
	}

	for _, dCol := range [...]int{-1, 1} {
		target := from.offset(dir, dCol)
		if !target.Valid() {
			continue
		}
		if occupant, occupied := board.Piece(target); occupied && occupant.Color != color {
			moves = appendPawnMove(moves, from, target, color)
		}
	}
	return moves
}

// appendPawnMove expands a move onto the far rank into its four promotion variants.
func appendPawnMove(moves []Move, from, to Position, color Color) []Move {
	if to.Row != promotionRow(color) {
		return append(moves, Move{Start: from, End: to})
	}
	for _, promotion := range promotionTypes {
		moves = append(moves, Move{Start: from, End: to, Promotion: promotion})
	}
	return moves
}
