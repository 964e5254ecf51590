package ui

import (
	"strings"

	"blockfall/internal/game"
)

// cellWidth is how many terminal columns one board cell occupies. Two keeps
// the aspect ratio roughly square.
const cellWidth = 2

// renderBoard paints the playfield, falling piece included, as settled in
// the grid by the engine.
func renderBoard(b *game.Board, s Styles) string {
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.Width(); x++ {
			sb.WriteString(renderCell(b.Get(x, y), s))
		}
	}
	return s.Board.Render(sb.String())
}

func renderCell(k game.Kind, s Styles) string {
	if k == game.KindNone {
		return s.EmptyCell.Render(" ·")
	}
	return s.PieceCells[k].Render(strings.Repeat(" ", cellWidth))
}

// renderPreview draws a shape on a small normalized grid for the side
// panel's next-piece box.
func renderPreview(k game.Kind, s Styles) string {
	cells := game.ShapePiece(k).Cells()

	minX, minY, maxX, maxY := cells[0].X, cells[0].Y, cells[0].X, cells[0].Y
	for _, c := range cells {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	occupied := make(map[game.Cell]bool, len(cells))
	for _, c := range cells {
		occupied[game.Cell{X: c.X - minX, Y: c.Y - minY}] = true
	}

	var sb strings.Builder
	for y := 0; y <= maxY-minY; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x <= maxX-minX; x++ {
			if occupied[game.Cell{X: x, Y: y}] {
				sb.WriteString(s.PieceCells[k].Render(strings.Repeat(" ", cellWidth)))
			} else {
				sb.WriteString(strings.Repeat(" ", cellWidth))
			}
		}
	}
	return sb.String()
}
