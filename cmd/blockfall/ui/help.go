package ui

import "github.com/charmbracelet/glamour"

// helpMarkdown is the how-to-play overlay source. Rendered once at startup.
const helpMarkdown = `# blockfall

Stack the falling tetrominoes. Complete rows disappear; the game ends when
the stack reaches the top of the well.

## Controls

| Key | Action |
|-----|--------|
| ← / h | move left |
| → / l | move right |
| ↑ / k | rotate clockwise |
| ↓ / j | soft drop (1 point per row) |
| space | hard drop (2 points per row) |
| p | pause |
| r | restart |
| s | high scores |
| ? | toggle this help |
| q | quit |

## Scoring

Clearing 1/2/3/4 rows at once scores 100/300/500/800 points, multiplied by
the current level. The level rises every ten cleared rows and gravity
speeds up with it.
`

// renderHelp produces the styled help text, falling back to the raw
// markdown if the renderer cannot be built.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
