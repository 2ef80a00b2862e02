// Package render draws boards for the terminal client.
package render

import (
	"strings"
	"unicode"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/fatih/color"
)

var border = color.New(color.BgBlack, color.FgHiWhite)

// Board draws b with perspective's home rank at the bottom. Squares in
// highlights get a yellow background. White pieces are upper case, black
// lower case, so the board still reads without colour.
func Board(b *chess.Board, perspective chess.Color, highlights []chess.Position) string {
	marked := make(map[chess.Position]bool, len(highlights))
	for _, pos := range highlights {
		marked[pos] = true
	}

	rows := []int{8, 7, 6, 5, 4, 3, 2, 1}
	cols := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if perspective == chess.Black {
		rows = []int{1, 2, 3, 4, 5, 6, 7, 8}
		cols = []int{8, 7, 6, 5, 4, 3, 2, 1}
	}

	var sb strings.Builder
	header := fileHeader(cols)
	sb.WriteString(header)
	for _, row := range rows {
		rank := " " + string(rune('0'+row)) + " "
		sb.WriteString(border.Sprint(rank))
		for _, col := range cols {
			pos := chess.NewPosition(row, col)
			sb.WriteString(square(b, pos, marked[pos]))
		}
		sb.WriteString(border.Sprint(rank))
		sb.WriteString("\n")
	}
	sb.WriteString(header)
	return sb.String()
}

func fileHeader(cols []int) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for _, col := range cols {
		sb.WriteString(" " + string(rune('a'+col-1)) + " ")
	}
	sb.WriteString("   ")
	return border.Sprint(sb.String()) + "\n"
}

func background(pos chess.Position, highlighted bool) color.Attribute {
	light := (pos.Row+pos.Col)%2 == 1
	switch {
	case light && highlighted:
		return color.BgHiYellow
	case highlighted:
		return color.BgYellow
	case light:
		return color.BgWhite
	}
	return color.BgGreen
}

func square(b *chess.Board, pos chess.Position, highlighted bool) string {
	bg := background(pos, highlighted)
	piece, ok := b.Piece(pos)
	if !ok {
		return color.New(bg).Sprint("   ")
	}

	letter := rune(piece.Type.Letter())
	fg := color.FgHiRed
	if piece.Color == chess.Black {
		letter = unicode.ToLower(letter)
		fg = color.FgBlue
	}
	return color.New(bg, fg, color.Bold).Sprint(" " + string(letter) + " ")
}
