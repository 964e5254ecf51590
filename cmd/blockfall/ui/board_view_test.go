package ui

import (
	"strings"
	"testing"

	"blockfall/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoardDimensions(t *testing.T) {
	b := game.NewBoard(6, 4)
	s := NewStyles(DarkTheme())

	out := renderBoard(b, s)
	lines := strings.Split(out, "\n")
	// board rows plus top and bottom border
	assert.Len(t, lines, 4+2)
}

func TestRenderBoardShowsFallingPiece(t *testing.T) {
	b := game.NewBoard(8, 6)
	require.NoError(t, b.Spawn(game.ShapePiece(game.KindO), game.KindO))
	s := NewStyles(DarkTheme())

	// the O piece renders as colored blanks, so the top row must differ
	// from an empty board's top row
	empty := renderBoard(game.NewBoard(8, 6), s)
	assert.NotEqual(t, empty, renderBoard(b, s))
}

func TestRenderPreviewShapes(t *testing.T) {
	s := NewStyles(LightTheme())

	cases := []struct {
		kind game.Kind
		rows int
	}{
		{game.KindI, 1},
		{game.KindO, 2},
		{game.KindT, 2},
		{game.KindS, 2},
		{game.KindZ, 2},
		{game.KindJ, 3},
		{game.KindL, 3},
	}
	for _, tc := range cases {
		out := renderPreview(tc.kind, s)
		assert.Len(t, strings.Split(out, "\n"), tc.rows, "shape %s", tc.kind)
	}
}

func TestThemeFor(t *testing.T) {
	assert.False(t, ThemeFor("light").IsDark)
	assert.True(t, ThemeFor("dark").IsDark)

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, ThemeFor("auto").IsDark, "background 15 is light")

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, ThemeFor("auto").IsDark, "background 0 is dark")
}

func TestHelpRenders(t *testing.T) {
	out := renderHelp(60)
	assert.Contains(t, out, "blockfall")
	assert.Contains(t, out, "hard drop")
}
