package ui

import (
	"fmt"
	"strings"
	"time"

	"blockfall/internal/score"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ScoresPage renders the high-score table in a scrollable viewport.
type ScoresPage struct {
	viewport viewport.Model
	styles   Styles
}

// NewScoresPage creates the page component.
func NewScoresPage(styles Styles) ScoresPage {
	vp := viewport.New(52, 16)
	vp.SetContent("Loading scores...")
	return ScoresPage{viewport: vp, styles: styles}
}

// SetSize resizes the viewport.
func (p *ScoresPage) SetSize(w, h int) {
	p.viewport.Width = w
	p.viewport.Height = h
}

// SetRecords fills the table. An error replaces the table with a notice;
// high scores are best-effort and never block play.
func (p *ScoresPage) SetRecords(records []score.Record, err error) {
	if err != nil {
		p.viewport.SetContent(p.styles.Danger.Render("High scores unavailable: ") + err.Error())
		return
	}
	if len(records) == 0 {
		p.viewport.SetContent(p.styles.Muted.Render("No games recorded yet. Go stack some blocks."))
		return
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("High scores"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%-4s %-12s %8s %6s %6s %10s\n", "#", "Player", "Score", "Lines", "Level", "Duration"))
	sb.WriteString(strings.Repeat("─", 50) + "\n")
	for i, r := range records {
		player := r.Player
		if player == "" {
			player = "anonymous"
		}
		if len(player) > 12 {
			player = player[:11] + "…"
		}
		sb.WriteString(fmt.Sprintf("%-4d %-12s %8d %6d %6d %10s\n",
			i+1, player, r.Score, r.Lines, r.Level, r.Duration.Round(time.Second)))
	}
	p.viewport.SetContent(sb.String())
}

// Update forwards scroll keys to the viewport.
func (p ScoresPage) Update(msg tea.Msg) (ScoresPage, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the page.
func (p ScoresPage) View() string {
	return p.viewport.View()
}
