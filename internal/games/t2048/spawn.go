package t2048

// DefaultSpawnFourProbability is the chance a spawned tile is a 4 instead of a 2.
const DefaultSpawnFourProbability = 0.10

// Source is the randomness a spawn consumes. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Spawn places a 2 or 4 in a uniformly chosen empty cell.
// Returns the cell, the value placed and false if the board was full.
func Spawn(b *Board, src Source, fourProb float64) (Cell, int, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, 0, false
	}

	cell := empty[src.Intn(len(empty))]

	value := 2
	if src.Float64() < fourProb {
		value = 4
	}

	b.Set(cell.Row, cell.Col, value)
	return cell, value, true
}
