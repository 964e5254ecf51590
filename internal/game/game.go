package game

import (
	"math/rand/v2"
	"time"
)

// Standard board dimensions and gravity bounds.
const (
	DefaultWidth  = 10
	DefaultHeight = 20

	DefaultBaseInterval = 800 * time.Millisecond
	minInterval         = 100 * time.Millisecond
	intervalStep        = 60 * time.Millisecond

	linesPerLevel = 10
)

// clearScores maps rows-cleared-at-once to base points; multiplied by level.
var clearScores = [5]int{0, 100, 300, 500, 800}

// Game runs one play session: a board, a piece queue, score and level
// bookkeeping, and the gravity/lock/spawn cycle. It is not goroutine-safe;
// the UI drives it from a single update loop.
type Game struct {
	board *Board
	bag   *Bag

	next   Kind
	score  int
	lines  int
	over   bool
	paused bool

	baseInterval time.Duration
	startedAt    time.Time
	pieceCounts  map[Kind]int
}

// Options configures a new game. Zero values fall back to defaults.
type Options struct {
	Width        int
	Height       int
	BaseInterval time.Duration
	Rand         *rand.Rand
}

// New creates a game, spawns the first piece and primes the preview queue.
func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.BaseInterval <= 0 {
		opts.BaseInterval = DefaultBaseInterval
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g := &Game{
		board:        NewBoard(opts.Width, opts.Height),
		bag:          NewBag(opts.Rand),
		baseInterval: opts.BaseInterval,
		startedAt:    time.Now(),
		pieceCounts:  make(map[Kind]int),
	}
	g.next = g.bag.Next()
	g.spawnNext()
	return g
}

// Board exposes the playfield for rendering.
func (g *Game) Board() *Board { return g.board }

// Next returns the shape that will spawn after the current piece locks.
func (g *Game) Next() Kind { return g.next }

// Score returns the accumulated score.
func (g *Game) Score() int { return g.score }

// Lines returns the total rows cleared.
func (g *Game) Lines() int { return g.lines }

// Level starts at 1 and advances every ten cleared rows.
func (g *Game) Level() int { return g.lines/linesPerLevel + 1 }

// Over reports whether the session has ended.
func (g *Game) Over() bool { return g.over }

// Paused reports whether gravity and input are suspended.
func (g *Game) Paused() bool { return g.paused }

// TogglePause flips the pause state. A finished game cannot be paused.
func (g *Game) TogglePause() {
	if !g.over {
		g.paused = !g.paused
	}
}

// StartedAt returns the session start time.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// Duration returns how long the session has run.
func (g *Game) Duration() time.Duration { return time.Since(g.startedAt) }

// PieceCount returns how many pieces of the given shape have spawned.
func (g *Game) PieceCount(k Kind) int { return g.pieceCounts[k] }

// Interval returns the current gravity period: the base interval shortened
// by 60ms per level, floored at 100ms.
func (g *Game) Interval() time.Duration {
	iv := g.baseInterval - time.Duration(g.Level()-1)*intervalStep
	if iv < minInterval {
		iv = minInterval
	}
	return iv
}

// spawnNext promotes the preview shape onto the board and deals a new
// preview. A blocked spawn ends the game.
func (g *Game) spawnNext() {
	k := g.next
	g.next = g.bag.Next()
	if err := g.board.Spawn(ShapePiece(k), k); err != nil {
		g.over = true
		return
	}
	g.pieceCounts[k]++
}

// lock settles the current piece, scores any cleared rows and spawns the
// next piece.
func (g *Game) lock() {
	g.board.Lock()
	if n := g.board.ClearFilledRows(); n > 0 {
		g.lines += n
		if n > len(clearScores)-1 {
			n = len(clearScores) - 1
		}
		g.score += clearScores[n] * g.Level()
	}
	g.spawnNext()
}

// Step applies one gravity tick: the piece falls a row, or locks if it
// cannot. No-op when paused or over.
func (g *Game) Step() {
	if g.over || g.paused {
		return
	}
	if g.board.Down() != nil {
		g.lock()
	}
}

// MoveLeft shifts the piece left if the space is free.
func (g *Game) MoveLeft() {
	if g.active() {
		_ = g.board.Left()
	}
}

// MoveRight shifts the piece right if the space is free.
func (g *Game) MoveRight() {
	if g.active() {
		_ = g.board.Right()
	}
}

// Rotate turns the piece clockwise if the rotated cells are free. No wall
// kicks: a blocked rotation is simply refused.
func (g *Game) Rotate() {
	if g.active() {
		_ = g.board.Rotate()
	}
}

// SoftDrop moves the piece down one row for one point, locking it if it
// cannot fall.
func (g *Game) SoftDrop() {
	if !g.active() {
		return
	}
	if g.board.Down() != nil {
		g.lock()
		return
	}
	g.score++
}

// HardDrop sends the piece to the floor at two points per row and locks it.
func (g *Game) HardDrop() {
	if !g.active() {
		return
	}
	g.score += 2 * g.board.Drop()
	g.lock()
}

func (g *Game) active() bool {
	return !g.over && !g.paused
}
