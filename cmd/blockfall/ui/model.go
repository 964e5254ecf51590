package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"blockfall/internal/config"
	"blockfall/internal/game"
	"blockfall/internal/score"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Overlay selects which full-screen page, if any, covers the board.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayScores
)

// storeTimeout bounds score-database calls so a wedged disk cannot hang the
// update loop's command goroutines.
const storeTimeout = 3 * time.Second

type (
	// tickMsg drives gravity. seq ties the message to the tick chain that
	// scheduled it, so restarts don't leave a second chain running.
	tickMsg struct{ seq int }

	bestMsg struct {
		best int
		err  error
	}

	savedMsg struct{ err error }

	scoresMsg struct {
		records []score.Record
		err     error
	}
)

// Model is the top-level bubbletea model for a play session.
type Model struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *score.Store // nil when the score db failed to open

	styles Styles
	keys   KeyMap
	help   help.Model

	game    *game.Game
	newGame func() *game.Game

	overlay  Overlay
	helpView string
	scores   ScoresPage

	width  int
	height int

	best     int
	saved    bool
	saveErr  error
	gravSeq  int
	quitting bool

	// overlayPaused records that the overlay paused the game, so closing
	// it resumes; an explicit pause stays paused.
	overlayPaused bool
}

// NewModel wires a model from loaded config. store may be nil; the game
// then runs without persistence.
func NewModel(cfg *config.Config, logger *zap.Logger, store *score.Store) (Model, error) {
	interval, err := cfg.Interval()
	if err != nil {
		return Model{}, err
	}

	styles := NewStyles(ThemeFor(cfg.Theme))
	newGame := func() *game.Game {
		return game.New(game.Options{
			Width:        cfg.Board.Width,
			Height:       cfg.Board.Height,
			BaseInterval: interval,
		})
	}

	return Model{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		styles:   styles,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		game:     newGame(),
		newGame:  newGame,
		helpView: renderHelp(64),
		scores:   NewScoresPage(styles),
	}, nil
}

// Init starts the gravity tick chain and loads the best score.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started",
		zap.Int("width", m.cfg.Board.Width),
		zap.Int("height", m.cfg.Board.Height),
	)
	return tea.Batch(m.tickCmd(), m.fetchBestCmd())
}

func (m Model) tickCmd() tea.Cmd {
	seq := m.gravSeq
	return tea.Tick(m.game.Interval(), func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func (m Model) fetchBestCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		best, err := store.Best(ctx)
		return bestMsg{best: best, err: err}
	}
}

func (m Model) fetchScoresCmd() tea.Cmd {
	if m.store == nil {
		return func() tea.Msg {
			return scoresMsg{err: fmt.Errorf("score database unavailable")}
		}
	}
	store := m.store
	keep := m.cfg.Scores.Keep
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		records, err := store.Top(ctx, keep)
		return scoresMsg{records: records, err: err}
	}
}

func (m Model) saveScoreCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	rec := score.Record{
		Player:    os.Getenv("USER"),
		Score:     m.game.Score(),
		Lines:     m.game.Lines(),
		Level:     m.game.Level(),
		Duration:  m.game.Duration(),
		StartedAt: m.game.StartedAt(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		_, err := store.Add(ctx, rec)
		return savedMsg{err: err}
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scores.SetSize(min(msg.Width-4, 56), max(msg.Height-6, 8))
		return m, nil

	case tickMsg:
		if msg.seq != m.gravSeq {
			return m, nil // stale chain from before a restart
		}
		wasOver := m.game.Over()
		m.game.Step()
		cmds := []tea.Cmd{m.tickCmd()}
		if !wasOver && m.game.Over() {
			cmds = append(cmds, m.onGameOver())
		}
		return m, tea.Batch(cmds...)

	case bestMsg:
		if msg.err == nil {
			m.best = msg.best
		}
		return m, nil

	case savedMsg:
		m.saveErr = msg.err
		if msg.err != nil {
			m.logger.Warn("score save failed", zap.Error(msg.err))
		}
		return m, nil

	case scoresMsg:
		m.scores.SetRecords(msg.records, msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keyboard input by overlay state, then game state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.logger.Info("quit",
			zap.Int("score", m.game.Score()),
			zap.Int("lines", m.game.Lines()),
		)
		return m, tea.Quit
	}

	switch m.overlay {
	case OverlayHelp:
		// any key dismisses the help page
		m.closeOverlay()
		return m, nil

	case OverlayScores:
		switch {
		case key.Matches(msg, m.keys.Scores), msg.Type == tea.KeyEsc:
			m.closeOverlay()
			return m, nil
		default:
			var cmd tea.Cmd
			m.scores, cmd = m.scores.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.openOverlay(OverlayHelp)
		return m, nil

	case key.Matches(msg, m.keys.Scores):
		m.openOverlay(OverlayScores)
		return m, m.fetchScoresCmd()

	case key.Matches(msg, m.keys.Restart):
		return m.restart()

	case key.Matches(msg, m.keys.Pause):
		m.game.TogglePause()
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.game.MoveLeft()
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.game.MoveRight()
		return m, nil

	case key.Matches(msg, m.keys.Rotate):
		m.game.Rotate()
		return m, nil

	case key.Matches(msg, m.keys.SoftDrop):
		wasOver := m.game.Over()
		m.game.SoftDrop()
		if !wasOver && m.game.Over() {
			return m, m.onGameOver()
		}
		return m, nil

	case key.Matches(msg, m.keys.HardDrop):
		wasOver := m.game.Over()
		m.game.HardDrop()
		if !wasOver && m.game.Over() {
			return m, m.onGameOver()
		}
		return m, nil
	}

	return m, nil
}

// openOverlay shows a page and pauses the game under it.
func (m *Model) openOverlay(o Overlay) {
	m.overlay = o
	if !m.game.Paused() && !m.game.Over() {
		m.game.TogglePause()
		m.overlayPaused = true
	}
}

// closeOverlay returns to the board, resuming only if the overlay itself
// paused the game.
func (m *Model) closeOverlay() {
	m.overlay = OverlayNone
	if m.overlayPaused {
		m.overlayPaused = false
		if m.game.Paused() {
			m.game.TogglePause()
		}
	}
}

// onGameOver fires exactly once per session: log, persist, refresh best.
func (m *Model) onGameOver() tea.Cmd {
	if m.saved {
		return nil
	}
	m.saved = true
	m.logger.Info("game over",
		zap.Int("score", m.game.Score()),
		zap.Int("lines", m.game.Lines()),
		zap.Int("level", m.game.Level()),
		zap.Duration("duration", m.game.Duration()),
	)
	if m.game.Score() > m.best {
		m.best = m.game.Score()
	}
	return m.saveScoreCmd()
}

// restart begins a fresh session and invalidates the old tick chain.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.game = m.newGame()
	m.saved = false
	m.saveErr = nil
	m.overlay = OverlayNone
	m.overlayPaused = false
	m.gravSeq++
	return m, m.tickCmd()
}

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}

	boardW := m.game.Board().Width()*cellWidth + 2
	boardH := m.game.Board().Height() + 2
	if m.width < boardW+panelWidth || m.height < boardH+2 {
		return m.styles.Danger.Render("terminal too small") +
			m.styles.Muted.Render(fmt.Sprintf(" — need %dx%d", boardW+panelWidth, boardH+2))
	}

	var body string
	switch m.overlay {
	case OverlayHelp:
		body = m.styles.Overlay.Render(m.helpView)
	case OverlayScores:
		body = m.styles.Overlay.Render(m.scores.View())
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			renderBoard(m.game.Board(), m.styles),
			m.sidePanel(),
		)
	}

	footer := m.help.View(m.keys)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// Summary returns the one-line result printed after the TUI closes.
func (m Model) Summary() string {
	return fmt.Sprintf("final score %d (%d lines, level %d)",
		m.game.Score(), m.game.Lines(), m.game.Level())
}

// panelWidth reserves columns for the side panel next to the board.
const panelWidth = 22

func (m Model) sidePanel() string {
	s := m.styles
	var sb strings.Builder

	sb.WriteString(s.Title.Render("blockfall"))
	sb.WriteString("\n\n")

	stat := func(label string, value string) {
		sb.WriteString(s.Label.Render(fmt.Sprintf("%-7s", label)))
		sb.WriteString(s.Value.Render(value))
		sb.WriteByte('\n')
	}
	stat("score", fmt.Sprintf("%d", m.game.Score()))
	stat("best", fmt.Sprintf("%d", m.best))
	stat("lines", fmt.Sprintf("%d", m.game.Lines()))
	stat("level", fmt.Sprintf("%d", m.game.Level()))

	sb.WriteString("\n")
	sb.WriteString(s.Label.Render("next"))
	sb.WriteString("\n")
	sb.WriteString(renderPreview(m.game.Next(), s))
	sb.WriteString("\n")

	switch {
	case m.game.Over():
		sb.WriteString("\n")
		sb.WriteString(s.Danger.Render("GAME OVER"))
		sb.WriteString("\n")
		sb.WriteString(s.Muted.Render("r to restart, q to quit"))
		if m.saveErr != nil {
			sb.WriteString("\n")
			sb.WriteString(s.Muted.Render("score not saved"))
		}
	case m.game.Paused():
		sb.WriteString("\n")
		sb.WriteString(s.Value.Render("PAUSED"))
	}

	return s.Panel.Render(sb.String())
}
