package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardOf builds a board from row literals, 0 meaning empty. Test-only.
func boardOf(rows ...[]Kind) *Board {
	b := &Board{
		rows:   rows,
		width:  len(rows[0]),
		height: len(rows),
	}
	return b
}

func row(ks ...Kind) []Kind { return ks }

func TestNewBoardEmpty(t *testing.T) {
	b := NewBoard(4, 8)
	for x := 0; x < 4; x++ {
		for y := 0; y < 8; y++ {
			assert.Equal(t, KindNone, b.Get(x, y))
		}
	}
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 8, b.Height())
	assert.False(t, b.HasFalling())
}

func TestClearFilledRows(t *testing.T) {
	b := NewBoard(4, 8)

	// rows 5 and 7 full, row 6 has a gap at x=2
	for _, c := range []Cell{
		{0, 5}, {1, 5}, {2, 5}, {3, 5},
		{0, 6}, {1, 6}, {3, 6},
		{0, 7}, {1, 7}, {2, 7}, {3, 7},
	} {
		b.set(c, KindO)
	}

	assert.Equal(t, 2, b.ClearFilledRows())

	for x := 0; x < 4; x++ {
		for y := 0; y < 7; y++ {
			assert.Equal(t, KindNone, b.Get(x, y), "cell (%d,%d)", x, y)
		}
	}
	// the partial row settled to the bottom
	assert.Equal(t, KindO, b.Get(0, 7))
	assert.Equal(t, KindO, b.Get(1, 7))
	assert.Equal(t, KindNone, b.Get(2, 7))
	assert.Equal(t, KindO, b.Get(3, 7))

	assert.Equal(t, 0, b.ClearFilledRows())
	assert.Equal(t, 8, b.Height())
	assert.Len(t, b.rows, 8)
}

func TestCheckPiece(t *testing.T) {
	b := boardOf(
		row(0, 0, 0),
		row(0, 0, 0),
		row(0, KindO, KindO),
		row(0, KindO, KindO),
	)

	// horizontal I does not fit a 3-wide board
	assert.Error(t, b.checkPiece(ShapePiece(KindI)))
	// vertical I hugs the empty left column
	vert := ShapePiece(KindI).rotateAbout(Cell{0, 0})
	assert.NoError(t, b.checkPiece(vert))
	assert.Error(t, b.checkPiece(vert.Down()))

	assert.NoError(t, b.checkPiece(ShapePiece(KindO)))
	assert.Error(t, b.checkPiece(ShapePiece(KindO).Down()))
	assert.Error(t, b.checkPiece(ShapePiece(KindO).Right().Right()))
}

func TestUpdatePieceRollback(t *testing.T) {
	b := boardOf(
		row(0, 0, 0, 0, 0),
		row(0, 0, 0, 0, 0),
		row(0, 0, 0, 0, 0),
		row(0, KindO, 0, KindO, KindO),
		row(KindO, KindO, KindO, 0, KindO),
	)

	require.NoError(t, b.updatePiece(ShapePiece(KindI), KindI))
	want := boardOf(
		row(KindI, KindI, KindI, KindI, 0),
		row(0, 0, 0, 0, 0),
		row(0, 0, 0, 0, 0),
		row(0, KindO, 0, KindO, KindO),
		row(KindO, KindO, KindO, 0, KindO),
	)
	if diff := cmp.Diff(want.rows, b.rows); diff != "" {
		t.Errorf("board mismatch after place (-want +got):\n%s", diff)
	}

	require.NoError(t, b.Down())
	want = boardOf(
		row(0, 0, 0, 0, 0),
		row(KindI, KindI, KindI, KindI, 0),
		row(0, 0, 0, 0, 0),
		row(0, KindO, 0, KindO, KindO),
		row(KindO, KindO, KindO, 0, KindO),
	)
	if diff := cmp.Diff(want.rows, b.rows); diff != "" {
		t.Errorf("board mismatch after down (-want +got):\n%s", diff)
	}

	// rotation collides with the settled stack and must roll back cleanly
	require.ErrorIs(t, b.Rotate(), ErrInvalidPosition)
	if diff := cmp.Diff(want.rows, b.rows); diff != "" {
		t.Errorf("board changed by failed rotate (-want +got):\n%s", diff)
	}

	// manual reposition: lift a row and rotate about the origin into column 0
	next := b.falling.Translate(0, -1).rotateAbout(Cell{0, 0})
	require.NoError(t, b.updatePiece(next, KindI))
	want = boardOf(
		row(KindI, 0, 0, 0, 0),
		row(KindI, 0, 0, 0, 0),
		row(KindI, 0, 0, 0, 0),
		row(KindI, KindO, 0, KindO, KindO),
		row(KindO, KindO, KindO, 0, KindO),
	)
	if diff := cmp.Diff(want.rows, b.rows); diff != "" {
		t.Errorf("board mismatch after reposition (-want +got):\n%s", diff)
	}
}

func TestSpawn(t *testing.T) {
	b := NewBoard(5, 4)
	require.NoError(t, b.Spawn(ShapePiece(KindI), KindI))
	want := boardOf(
		row(0, KindI, KindI, KindI, KindI),
		row(0, 0, 0, 0, 0),
		row(0, 0, 0, 0, 0),
		row(0, 0, 0, 0, 0),
	)
	if diff := cmp.Diff(want.rows, b.rows); diff != "" {
		t.Errorf("I spawn mismatch (-want +got):\n%s", diff)
	}

	// spawn area now blocked
	assert.Error(t, b.Spawn(ShapePiece(KindO), KindO))

	b2 := NewBoard(5, 4)
	require.NoError(t, b2.Spawn(ShapePiece(KindJ), KindJ))
	want2 := boardOf(
		row(0, 0, KindJ, 0, 0),
		row(0, 0, KindJ, 0, 0),
		row(0, KindJ, KindJ, 0, 0),
		row(0, 0, 0, 0, 0),
	)
	if diff := cmp.Diff(want2.rows, b2.rows); diff != "" {
		t.Errorf("J spawn mismatch (-want +got):\n%s", diff)
	}

	b3 := NewBoard(5, 4)
	require.NoError(t, b3.Spawn(ShapePiece(KindZ), KindZ))
	want3 := boardOf(
		row(0, KindZ, KindZ, 0, 0),
		row(0, 0, KindZ, KindZ, 0),
		row(0, 0, 0, 0, 0),
		row(0, 0, 0, 0, 0),
	)
	if diff := cmp.Diff(want3.rows, b3.rows); diff != "" {
		t.Errorf("Z spawn mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveWithoutPiece(t *testing.T) {
	b := NewBoard(5, 5)
	assert.ErrorIs(t, b.Down(), ErrNoFallingPiece)
	assert.ErrorIs(t, b.Left(), ErrNoFallingPiece)
	assert.ErrorIs(t, b.Right(), ErrNoFallingPiece)
	assert.ErrorIs(t, b.Rotate(), ErrNoFallingPiece)
	assert.Equal(t, 0, b.Drop())
}

func TestDrop(t *testing.T) {
	b := NewBoard(6, 10)
	require.NoError(t, b.Spawn(ShapePiece(KindO), KindO))

	// O spawns in rows 0-1 and has 8 free rows beneath it
	assert.Equal(t, 8, b.Drop())
	assert.Equal(t, KindO, b.Get(3, 9))
	assert.Equal(t, KindO, b.Get(4, 9))
	assert.Equal(t, KindO, b.Get(3, 8))
	assert.Equal(t, KindO, b.Get(4, 8))

	b.Lock()
	assert.False(t, b.HasFalling())
}
