package score

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddAssignsID(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Add(context.Background(), Record{
		Score:     1200,
		Lines:     9,
		Level:     1,
		Duration:  3 * time.Minute,
		StartedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestTopOrdersByScoreThenAge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, r := range []Record{
		{Player: "ada", Score: 500},
		{Player: "bob", Score: 900},
		{Player: "cleo", Score: 900},
		{Player: "dan", Score: 100},
	} {
		r.Level = 1
		r.Duration = time.Minute
		r.StartedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := s.Add(ctx, r)
		require.NoError(t, err)
	}

	top, err := s.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "bob", top[0].Player, "earlier game wins the tie")
	assert.Equal(t, "cleo", top[1].Player)
	assert.Equal(t, "ada", top[2].Player)
	assert.Equal(t, time.Minute, top[0].Duration)
}

func TestBest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	best, err := s.Best(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, best, "empty table reads as zero")

	_, err = s.Add(ctx, Record{Score: 4242, Level: 3, StartedAt: time.Now()})
	require.NoError(t, err)

	best, err = s.Best(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4242, best)
}

func TestTopOnEmptyStore(t *testing.T) {
	s := newTestStore(t)
	top, err := s.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.db")

	s, err := NewStore(path)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), Record{Score: 777, StartedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewStore(path)
	require.NoError(t, err)
	defer s2.Close()

	best, err := s2.Best(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 777, best)
}
