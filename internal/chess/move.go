package chess

import (
	"encoding/json"
	"fmt"
)

// Move is a pure value; Promotion is zero unless a pawn promotes.
type Move struct {
	Start     Position
	End       Position
	Promotion PieceType
}

func NewMove(start, end Position, promotion PieceType) Move {
	return Move{Start: start, End: end, Promotion: promotion}
}

func (m Move) String() string {
	if m.Promotion.Valid() {
		return fmt.Sprintf("%s%s=%c", m.Start, m.End, m.Promotion.Letter())
	}
	return fmt.Sprintf("%s%s", m.Start, m.End)
}

type moveJSON struct {
	Start     Position   `json:"start"`
	End       Position   `json:"end"`
	Promotion *PieceType `json:"promotion"`
}

func (m Move) MarshalJSON() ([]byte, error) {
	wire := moveJSON{Start: m.Start, End: m.End}
	if m.Promotion.Valid() {
		promotion := m.Promotion
		wire.Promotion = &promotion
	}
	return json.Marshal(wire)
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var wire moveJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if !wire.Start.Valid() || !wire.End.Valid() {
		return fmt.Errorf("move %v -> %v is off the board", wire.Start, wire.End)
	}
	m.Start = wire.Start
	m.End = wire.End
	m.Promotion = 0
	if wire.Promotion != nil {
		m.Promotion = *wire.Promotion
	}
	return nil
}

func containsMove(moves []Move, move Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}
