// Package game implements the blockfall playfield engine: piece algebra,
// board state, line clears and the gravity/lock/spawn state machine.
// It is UI-agnostic; the bubbletea layer in cmd/blockfall/ui drives it.
package game

// Cell is a single grid coordinate. X grows rightward, Y grows downward,
// matching terminal row order.
type Cell struct {
	X int
	Y int
}

// Kind identifies a tetromino shape. KindNone marks an empty board cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists the seven playable shapes in spawn-bag order.
var Kinds = [7]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// String returns the conventional one-letter shape name.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "."
	}
}

// shapes holds the base orientation of each tetromino. The first cell is the
// rotation pivot; Board.Spawn also uses the first topmost cell to center the
// piece, so pivot-first ordering matters.
var shapes = map[Kind][]Cell{
	KindI: {{1, 0}, {0, 0}, {2, 0}, {3, 0}},
	KindO: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	KindT: {{0, 0}, {-1, 0}, {1, 0}, {0, 1}},
	KindS: {{0, 0}, {1, 0}, {0, 1}, {-1, 1}},
	KindZ: {{0, 0}, {-1, 0}, {0, 1}, {1, 1}},
	KindJ: {{0, 1}, {0, 0}, {0, 2}, {-1, 2}},
	KindL: {{0, 1}, {0, 0}, {0, 2}, {1, 2}},
}

// Piece is an immutable set of cells; every operation returns a new Piece.
// The cell at index 0 is the rotation pivot.
type Piece struct {
	cells []Cell
}

// NewPiece constructs a piece from explicit cells. The slice is copied.
func NewPiece(cells []Cell) Piece {
	c := make([]Cell, len(cells))
	copy(c, cells)
	return Piece{cells: c}
}

// ShapePiece returns the base orientation of the given shape.
func ShapePiece(k Kind) Piece {
	return NewPiece(shapes[k])
}

// Cells returns the piece's cells. Callers must not mutate the slice.
func (p Piece) Cells() []Cell {
	return p.cells
}

// Translate returns the piece shifted by (dx, dy).
func (p Piece) Translate(dx, dy int) Piece {
	out := make([]Cell, len(p.cells))
	for i, c := range p.cells {
		out[i] = Cell{c.X + dx, c.Y + dy}
	}
	return Piece{cells: out}
}

// Left returns the piece shifted one column left.
func (p Piece) Left() Piece { return p.Translate(-1, 0) }

// Right returns the piece shifted one column right.
func (p Piece) Right() Piece { return p.Translate(1, 0) }

// Down returns the piece shifted one row down.
func (p Piece) Down() Piece { return p.Translate(0, 1) }

// Rotate returns the piece rotated 90 degrees clockwise about its pivot.
func (p Piece) Rotate() Piece {
	return p.rotateAbout(p.cells[0])
}

// rotateAbout rotates clockwise about an arbitrary center. With Y growing
// downward, clockwise is (x, y) -> (x0+y0-y, y0-x0+x).
func (p Piece) rotateAbout(center Cell) Piece {
	out := make([]Cell, len(p.cells))
	for i, c := range p.cells {
		out[i] = Cell{center.X + center.Y - c.Y, center.Y - center.X + c.X}
	}
	return Piece{cells: out}
}

// Valid reports whether every cell satisfies the predicate.
func (p Piece) Valid(pred func(Cell) bool) bool {
	for _, c := range p.cells {
		if !pred(c) {
			return false
		}
	}
	return true
}

// Equal reports whether two pieces have identical cells in identical order.
func (p Piece) Equal(o Piece) bool {
	if len(p.cells) != len(o.cells) {
		return false
	}
	for i := range p.cells {
		if p.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}
