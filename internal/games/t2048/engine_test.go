package t2048

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqSource replays fixed draws. Exhausted ints yield 0 and exhausted
// floats yield 0.5, which spawns a 2 at the default probability.
type seqSource struct {
	ints   []int
	floats []float64
}

func (s *seqSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *seqSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func nonZero(g Grid) int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func TestResetPlacesTwoTiles(t *testing.T) {
	for seed := range int64(50) {
		e := NewEngine(rand.New(rand.NewSource(seed)))
		s := e.State()

		require.Equal(t, 0, s.Score)
		require.Equal(t, 0, s.Moves)
		require.Equal(t, 2, nonZero(s.Grid))
		require.False(t, s.GameOver)
		require.False(t, IsTerminal(e.Board()))
		for _, v := range s.Cells {
			require.Contains(t, []int{0, 2, 4}, v)
		}
	}
}

func TestResetClearsProgress(t *testing.T) {
	e := NewEngine(&seqSource{}, WithBoard(Grid{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 100))

	_, err := e.Apply(DirLeft)
	require.NoError(t, err)
	require.Equal(t, 104, e.Score())
	require.Equal(t, 1, e.Moves())

	e.Reset()

	require.Equal(t, 0, e.Score())
	require.Equal(t, 0, e.Moves())
	require.Equal(t, 2, nonZero(e.State().Grid))
}

func TestApplyConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(2048))
	e := NewEngine(rand.New(rand.NewSource(1)))

	for range 500 {
		if e.GameOver() {
			e.Reset()
		}

		before := e.Board().Sum()
		tilesBefore := nonZero(e.State().Grid)
		scoreBefore := e.Score()

		dir := Direction(rng.Intn(4))
		res, err := e.Apply(dir)
		require.NoError(t, err)

		if !res.Moved {
			require.Nil(t, res.Spawned)
			require.Equal(t, scoreBefore, res.Score)
			continue
		}

		require.NotNil(t, res.Spawned)
		require.Contains(t, []int{2, 4}, res.Spawned.Value)
		require.Equal(t, scoreBefore+res.Gained, res.Score)

		// Undo the spawn to inspect the bare move.
		afterMove := e.Board().Sum() - res.Spawned.Value
		tilesAfterMove := nonZero(res.Grid) - 1
		require.Equal(t, before+res.Gained, afterMove)
		require.LessOrEqual(t, tilesAfterMove, tilesBefore)
		if res.Gained == 0 {
			require.Equal(t, tilesBefore, tilesAfterMove)
		} else {
			require.Less(t, tilesAfterMove, tilesBefore)
		}
	}
}

func TestNoOpMoveIsSideEffectFree(t *testing.T) {
	src := &seqSource{}
	e := NewEngine(src, WithBoard(Grid{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 12))

	before := e.State()
	res, err := e.Apply(DirLeft)
	require.NoError(t, err)

	require.False(t, res.Moved)
	require.Nil(t, res.Spawned)
	require.Equal(t, 0, res.Gained)
	require.Equal(t, before.Grid, res.Grid)
	require.Equal(t, before.Score, res.Score)
	require.Equal(t, before.Moves, res.Moves)

	// Again: still nothing.
	res, err = e.Apply(DirLeft)
	require.NoError(t, err)
	require.False(t, res.Moved)
	require.Equal(t, before.Grid, res.Grid)
}

func TestRepeatedDirectionSettles(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(9)))

	for range 20 {
		res, err := e.Apply(DirUp)
		require.NoError(t, err)
		if !res.Moved {
			again, err := e.Apply(DirUp)
			require.NoError(t, err)
			require.False(t, again.Moved)
			require.Equal(t, res.Grid, again.Grid)
			require.Equal(t, res.Score, again.Score)
			return
		}
		if res.GameOver {
			return
		}
	}
}

func TestSingleMergePerTile(t *testing.T) {
	e := NewEngine(&seqSource{}, WithBoard(Grid{
		{2, 2, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))

	res, err := e.Apply(DirLeft)
	require.NoError(t, err)
	require.True(t, res.Moved)
	require.Equal(t, 8, res.Gained)
	require.Equal(t, [BoardSize]int{4, 4, 0, 0}, res.Grid[0])
}

func TestRightMirror(t *testing.T) {
	grid := Grid{
		{0, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	right := NewBoard(grid, 0)
	_, moved := slideBoard(right, DirRight)
	require.True(t, moved)
	require.Equal(t, Line{0, 0, 0, 4}, right.GetLine(DirRight, 0))

	left := NewBoard(grid, 0)
	_, moved = slideBoard(left, DirLeft)
	require.True(t, moved)
	require.Equal(t, Line{4, 0, 0, 0}, left.GetLine(DirLeft, 0))
}

func TestGameOverAfterMove(t *testing.T) {
	// Sliding left opens (0,3) and the spawned 4 completes a checkerboard.
	e := NewEngine(&seqSource{floats: []float64{0}}, WithBoard(Grid{
		{0, 2, 4, 2},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}, 0))
	require.False(t, e.GameOver())

	res, err := e.Apply(DirLeft)
	require.NoError(t, err)
	require.True(t, res.Moved)
	require.Equal(t, Cell{Row: 0, Col: 3}, res.Spawned.Cell)
	require.Equal(t, 4, res.Spawned.Value)
	require.True(t, res.GameOver)
	require.True(t, IsTerminal(e.Board()))
}

func TestSpawnBounds(t *testing.T) {
	b := NewBoard(Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 0, 4},
		{4, 2, 4, 2},
	}, 0)

	cell, value, ok := Spawn(b, rand.New(rand.NewSource(5)), DefaultSpawnFourProbability)
	require.True(t, ok)
	require.Equal(t, Cell{Row: 2, Col: 2}, cell)
	require.Contains(t, []int{2, 4}, value)
	require.Equal(t, value, b.Get(2, 2))

	full := b.Grid()
	_, _, ok = Spawn(b, rand.New(rand.NewSource(5)), DefaultSpawnFourProbability)
	require.False(t, ok)
	require.Equal(t, full, b.Grid())
}

func TestSpawnFourProbability(t *testing.T) {
	b := &Board{}

	_, value, ok := Spawn(b, &seqSource{floats: []float64{0.05}}, 0.10)
	require.True(t, ok)
	require.Equal(t, 4, value)

	_, value, ok = Spawn(b, &seqSource{floats: []float64{0.10}}, 0.10)
	require.True(t, ok)
	require.Equal(t, 2, value)

	// A probability of zero never spawns a 4.
	_, value, _ = Spawn(b, &seqSource{floats: []float64{0}}, 0)
	require.Equal(t, 2, value)
}

func TestApplyInvalidDirection(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))
	before := e.State()

	_, err := e.Apply(Direction(7))
	require.ErrorIs(t, err, ErrInvalidDirection)
	require.Equal(t, before, e.State())

	_, err = ParseDirection("north")
	require.ErrorIs(t, err, ErrInvalidDirection)
}

func TestWithOptions(t *testing.T) {
	e := NewEngine(&seqSource{}, WithSpawnFourProbability(3), WithTarget(-5))
	require.Equal(t, 1.0, e.fourProb)
	require.Equal(t, 0, e.Target())

	e = NewEngine(&seqSource{}, WithTarget(64), WithBoard(Grid{
		{64, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))
	require.True(t, e.Won())
	require.False(t, e.GameOver())
}

func TestNilSourceFallsBack(t *testing.T) {
	e := NewEngine(nil)
	require.Equal(t, 2, nonZero(e.State().Grid))
}
