package chess

import (
	"fmt"
	"strings"
)

// Color identifies one of the two sides.
type Color uint8

const (
	White Color = iota + 1
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	}
	return "UNKNOWN"
}

// ParseColor accepts "WHITE"/"BLACK" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToUpper(s) {
	case "WHITE":
		return White, nil
	case "BLACK":
		return Black, nil
	}
	return 0, fmt.Errorf("invalid color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	if c != White && c != Black {
		return nil, fmt.Errorf("invalid color %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// PieceType is one of the six chess piece kinds. The zero value means "no type" and
// is what an unpromoted Move carries.
type PieceType uint8

const (
	King PieceType = iota + 1
	Queen
	Bishop
	Knight
	Rook
	Pawn
)

var pieceTypeNames = [...]string{
	King:   "KING",
	Queen:  "QUEEN",
	Bishop: "BISHOP",
	Knight: "KNIGHT",
	Rook:   "ROOK",
	Pawn:   "PAWN",
}

func (t PieceType) Valid() bool {
	return t >= King && t <= Pawn
}

func (t PieceType) String() string {
	if !t.Valid() {
		return "NONE"
	}
	return pieceTypeNames[t]
}

// Letter returns the upper-case notation letter (N for knight).
func (t PieceType) Letter() byte {
	switch t {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Rook:
		return 'R'
	case Pawn:
		return 'P'
	}
	return ' '
}

func ParsePieceType(s string) (PieceType, error) {
	for t := King; t <= Pawn; t++ {
		if pieceTypeNames[t] == s {
			return t, nil
		}
	}
	switch s {
	case "k", "K", "king":
		return King, nil
	case "q", "Q", "queen":
		return Queen, nil
	case "b", "B", "bishop":
		return Bishop, nil
	case "n", "N", "knight":
		return Knight, nil
	case "r", "R", "rook":
		return Rook, nil
	case "p", "P", "pawn":
		return Pawn, nil
	}
	return 0, fmt.Errorf("invalid piece type %q", s)
}

func (t PieceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid piece type %d", t)
	}
	return []byte(t.String()), nil
}

func (t *PieceType) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Piece is an immutable (color, type) pair. The zero Piece is "no piece".
type Piece struct {
	Color Color     `json:"color"`
	Type  PieceType `json:"type"`
}

// NoPiece is what an empty board cell holds.
var NoPiece = Piece{}

func NewPiece(color Color, pieceType PieceType) Piece {
	return Piece{Color: color, Type: pieceType}
}

func (p Piece) IsEmpty() bool {
	return p == NoPiece
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}
