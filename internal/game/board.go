package game

import "errors"

var (
	// ErrInvalidPosition is returned when a move would leave the falling
	// piece out of bounds or overlapping settled cells. The move is rolled
	// back and the board is unchanged.
	ErrInvalidPosition = errors.New("invalid piece position")

	// ErrNoFallingPiece is returned by movement operations when nothing has
	// been spawned yet.
	ErrNoFallingPiece = errors.New("no falling piece on board")
)

// Board is the playfield: a width x height grid of settled cells plus the
// currently falling piece. The falling piece's cells are written into the
// grid so rendering can treat settled and falling cells uniformly; movement
// clears them, validates the candidate position and rolls back on failure.
type Board struct {
	rows    [][]Kind
	width   int
	height  int
	falling *Piece
	kind    Kind
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	rows := make([][]Kind, height)
	for y := range rows {
		rows[y] = make([]Kind, width)
	}
	return &Board{rows: rows, width: width, height: height}
}

// Width returns the board width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the board height in cells.
func (b *Board) Height() int { return b.height }

// Get returns the cell value at (x, y). The falling piece's cells read as
// its kind, not KindNone.
func (b *Board) Get(x, y int) Kind {
	return b.rows[y][x]
}

// HasFalling reports whether a piece is currently in play.
func (b *Board) HasFalling() bool { return b.falling != nil }

func (b *Board) set(c Cell, k Kind) { b.rows[c.Y][c.X] = k }
func (b *Board) clearCell(c Cell)   { b.rows[c.Y][c.X] = KindNone }

func (b *Board) inBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.width && c.Y < b.height
}

// checkPiece validates that every cell is in bounds and unoccupied. The
// falling piece must already be lifted off the grid when this runs.
func (b *Board) checkPiece(p Piece) error {
	ok := p.Valid(func(c Cell) bool {
		return b.inBounds(c) && b.Get(c.X, c.Y) == KindNone
	})
	if !ok {
		return ErrInvalidPosition
	}
	return nil
}

// updatePiece replaces the falling piece with next: the current cells are
// cleared, next is validated, and on failure the original cells are
// restored so the board is untouched.
func (b *Board) updatePiece(next Piece, k Kind) error {
	if b.falling != nil {
		for _, c := range b.falling.Cells() {
			b.clearCell(c)
		}
	}

	err := b.checkPiece(next)
	if err == nil {
		for _, c := range next.Cells() {
			b.set(c, k)
		}
		b.falling = &next
		b.kind = k
		return nil
	}

	if b.falling != nil {
		for _, c := range b.falling.Cells() {
			b.set(c, b.kind)
		}
	}
	return err
}

// Spawn places a new falling piece, translated so its first topmost cell
// sits at (width/2, 0). Failure means the spawn area is blocked; the caller
// treats that as game over.
func (b *Board) Spawn(p Piece, k Kind) error {
	top := p.Cells()[0]
	for _, c := range p.Cells() {
		if c.Y < top.Y {
			top = c
		}
	}

	// Forget the previous piece so updatePiece does not lift its settled
	// cells off the grid.
	b.falling = nil

	return b.updatePiece(p.Translate(b.width/2-top.X, -top.Y), k)
}

// move applies op to the falling piece, rolling back on collision.
func (b *Board) move(op func(Piece) Piece) error {
	if b.falling == nil {
		return ErrNoFallingPiece
	}
	return b.updatePiece(op(*b.falling), b.kind)
}

// Left shifts the falling piece one column left.
func (b *Board) Left() error { return b.move(Piece.Left) }

// Right shifts the falling piece one column right.
func (b *Board) Right() error { return b.move(Piece.Right) }

// Down shifts the falling piece one row down. ErrInvalidPosition here means
// the piece is resting on something and should lock.
func (b *Board) Down() error { return b.move(Piece.Down) }

// Rotate turns the falling piece clockwise about its pivot.
func (b *Board) Rotate() error { return b.move(Piece.Rotate) }

// Drop moves the falling piece down until it rests, returning the number of
// rows travelled.
func (b *Board) Drop() int {
	n := 0
	for b.Down() == nil {
		n++
	}
	return n
}

// Lock settles the falling piece in place. Further movement requires a new
// Spawn.
func (b *Board) Lock() {
	b.falling = nil
	b.kind = KindNone
}

// ClearFilledRows removes every full row, pushes empty rows in at the top to
// keep the height constant, and returns how many rows were cleared.
func (b *Board) ClearFilledRows() int {
	kept := b.rows[:0]
	for _, row := range b.rows {
		full := true
		for _, k := range row {
			if k == KindNone {
				full = false
				break
			}
		}
		if !full {
			kept = append(kept, row)
		}
	}

	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][]Kind, 0, b.height)
	for i := 0; i < cleared; i++ {
		rows = append(rows, make([]Kind, b.width))
	}
	rows = append(rows, kept...)
	b.rows = rows
	return cleared
}
