package render

import (
	"strings"
	"testing"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func init() {
	color.NoColor = true
}

func TestBoardWhitePerspective(t *testing.T) {
	got := Board(chess.NewBoard(), chess.White, nil)
	want := strings.Join([]string{
		"    a  b  c  d  e  f  g  h    ",
		" 8  r  n  b  q  k  b  n  r  8 ",
		" 7  p  p  p  p  p  p  p  p  7 ",
		" 6                          6 ",
		" 5                          5 ",
		" 4                          4 ",
		" 3                          3 ",
		" 2  P  P  P  P  P  P  P  P  2 ",
		" 1  R  N  B  Q  K  B  N  R  1 ",
		"    a  b  c  d  e  f  g  h    ",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Board mismatch (-want +got):\n%s", diff)
	}
}

func TestBoardBlackPerspective(t *testing.T) {
	got := strings.Split(Board(chess.NewBoard(), chess.Black, nil), "\n")
	if got[0] != "    h  g  f  e  d  c  b  a    " {
		t.Errorf("header = %q", got[0])
	}
	if got[1] != " 1  R  N  B  K  Q  B  N  R  1 " {
		t.Errorf("top rank = %q", got[1])
	}
	if got[8] != " 8  r  n  b  k  q  b  n  r  8 " {
		t.Errorf("bottom rank = %q", got[8])
	}
}

func TestBackgroundHighlights(t *testing.T) {
	tests := []struct {
		square      string
		highlighted bool
		want        color.Attribute
	}{
		{"a1", false, color.BgGreen},
		{"b1", false, color.BgWhite},
		{"a1", true, color.BgYellow},
		{"h1", true, color.BgHiYellow},
	}
	for _, tt := range tests {
		pos, err := chess.ParsePosition(tt.square)
		if err != nil {
			t.Fatal(err)
		}
		if got := background(pos, tt.highlighted); got != tt.want {
			t.Errorf("background(%s, %v) = %v; want %v", tt.square, tt.highlighted, got, tt.want)
		}
	}
}
