package chess

import (
	"encoding/json"
	"fmt"
)

// gameRecord is the stored/wire form of a Game. Grid row 0 holds board row 8 so the
// record reads top-down from Black's side, as the board is drawn for White.
type gameRecord struct {
	Turn  Color                        `json:"turn"`
	Board [boardSize][boardSize]*Piece `json:"board"`
}

func (b *Board) grid() [boardSize][boardSize]*Piece {
	var grid [boardSize][boardSize]*Piece
	b.Each(func(pos Position, piece Piece) {
		p := piece
		grid[boardSize-pos.Row][pos.Col-1] = &p
	})
	return grid
}

func boardFromGrid(grid [boardSize][boardSize]*Piece) (Board, error) {
	var b Board
	for i, row := range grid {
		for j, cell := range row {
			if cell == nil {
				continue
			}
			if !cell.Type.Valid() || (cell.Color != White && cell.Color != Black) {
				return Board{}, fmt.Errorf("invalid piece at grid[%d][%d]", i, j)
			}
			b.AddPiece(NewPosition(boardSize-i, j+1), *cell)
		}
	}
	return b, nil
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.grid())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var grid [boardSize][boardSize]*Piece
	if err := json.Unmarshal(data, &grid); err != nil {
		return err
	}
	decoded, err := boardFromGrid(grid)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

func (g *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameRecord{Turn: g.turn, Board: g.board.grid()})
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var record gameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("decode game: %w", err)
	}
	if record.Turn != White && record.Turn != Black {
		return fmt.Errorf("decode game: missing turn")
	}
	board, err := boardFromGrid(record.Board)
	if err != nil {
		return fmt.Errorf("decode game: %w", err)
	}
	g.board = board
	g.turn = record.Turn
	return nil
}
