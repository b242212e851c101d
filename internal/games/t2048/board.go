package t2048

// BoardSize is the board dimension.
const BoardSize = 4

// Grid is the raw cell matrix, indexed [row][col]. Zero means empty.
type Grid [BoardSize][BoardSize]int

// Line is one row or column, the unit the compaction algorithm works on.
type Line [BoardSize]int

// Cell addresses a single grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board owns the grid and the cumulative score.
// Values are only ever produced by compaction and spawning, so writes are not validated.
type Board struct {
	grid  Grid
	score int
}

// NewBoard returns a board holding the given grid and score.
func NewBoard(grid Grid, score int) *Board {
	return &Board{grid: grid, score: score}
}

// GetLine returns the line addressed by index along the axis of dir.
// Left/Right read row index left to right, Up/Down read column index top to bottom.
func (b *Board) GetLine(dir Direction, index int) Line {
	var line Line
	for i := range BoardSize {
		if dir.vertical() {
			line[i] = b.grid[i][index]
		} else {
			line[i] = b.grid[index][i]
		}
	}
	return line
}

// SetLine writes line back into the positions GetLine read it from.
// Returns true if any cell value changed.
func (b *Board) SetLine(dir Direction, index int, line Line) bool {
	changed := false
	for i := range BoardSize {
		cell := &b.grid[index][i]
		if dir.vertical() {
			cell = &b.grid[i][index]
		}
		if *cell != line[i] {
			*cell = line[i]
			changed = true
		}
	}
	return changed
}

// EmptyCells returns every zero cell in row-major order.
func (b *Board) EmptyCells() []Cell {
	var cells []Cell
	for r := range BoardSize {
		for c := range BoardSize {
			if b.grid[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// AddScore adds a non-negative delta to the score.
func (b *Board) AddScore(delta int) {
	if delta > 0 {
		b.score += delta
	}
}

// Score returns the cumulative score.
func (b *Board) Score() int {
	return b.score
}

// Grid returns a copy of the cell matrix.
func (b *Board) Grid() Grid {
	return b.grid
}

// Cells returns all 16 values in row-major order.
func (b *Board) Cells() []int {
	cells := make([]int, 0, BoardSize*BoardSize)
	for r := range BoardSize {
		cells = append(cells, b.grid[r][:]...)
	}
	return cells
}

// Get returns the value at (row, col).
func (b *Board) Get(row, col int) int {
	return b.grid[row][col]
}

// Set stores v at (row, col).
func (b *Board) Set(row, col, v int) {
	b.grid[row][col] = v
}

// MaxTile returns the highest tile value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			maxVal = max(maxVal, b.grid[r][c])
		}
	}
	return maxVal
}

// Sum returns the total of all cell values.
func (b *Board) Sum() int {
	total := 0
	for r := range BoardSize {
		for c := range BoardSize {
			total += b.grid[r][c]
		}
	}
	return total
}
