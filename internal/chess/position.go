package chess

import (
	"fmt"
)

const boardSize = 8

// Position is a board coordinate. Row 1 is White's back rank, column 1 is the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) Valid() bool {
	return inBounds(p.Row, p.Col)
}

func inBounds(row, col int) bool {
	return row >= 1 && row <= boardSize && col >= 1 && col <= boardSize
}

// index maps the position onto the board's backing array.
func (p Position) index() int {
	return (p.Row-1)*boardSize + (p.Col - 1)
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// String returns the square in algebraic form, e.g. "e2".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col-1, p.Row)
}

// ParsePosition reads an algebraic square such as "e2" or "H7".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	file := s[0] | 0x20 // lower-case
	if file < 'a' || file > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return Position{Row: int(s[1] - '0'), Col: int(file-'a') + 1}, nil
}
