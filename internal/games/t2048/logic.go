package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned when a move is requested with a value
// outside Up, Down, Left and Right.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// axis selects whether lines are rows or columns.
type axis int

const (
	axisRow axis = iota
	axisCol
)

// end is the side of a line tiles compact toward.
type end int

const (
	towardLow  end = iota // index 0
	towardHigh            // index BoardSize-1
)

// directions maps each direction onto the one compaction contract.
var directions = [...]struct {
	axis   axis
	toward end
}{
	DirUp:    {axisCol, towardLow},
	DirDown:  {axisCol, towardHigh},
	DirLeft:  {axisRow, towardLow},
	DirRight: {axisRow, towardHigh},
}

// Directions lists every valid direction.
func Directions() []Direction {
	return []Direction{DirUp, DirDown, DirLeft, DirRight}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) vertical() bool {
	return d.Valid() && directions[d].axis == axisCol
}

func (d Direction) toward() end {
	if !d.Valid() {
		return towardLow
	}
	return directions[d].toward
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Directions() {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("t2048: %w: %q", ErrInvalidDirection, s)
}

// compact slides a line toward one end and merges equal neighbours.
// It walks the line starting at the target end; a tile merges into the last
// placed tile if they are equal and that tile has not merged yet, so each tile
// takes part in at most one merge per move. Returns the new line and the
// score gained.
func compact(line Line, toward end) (result Line, gained int) {
	start, step := 0, 1
	if toward == towardHigh {
		start, step = BoardSize-1, -1
	}

	write := start
	open := -1 // position of the last placed tile still free to merge
	for k := range BoardSize {
		v := line[start+k*step]
		if v == 0 {
			continue
		}

		if open >= 0 && result[open] == v {
			result[open] *= 2
			gained += result[open]
			open = -1
			continue
		}

		result[write] = v
		open = write
		write += step
	}

	return result, gained
}

// slideBoard runs compaction over every line along dir's axis.
// Returns the score gained and whether any cell changed.
func slideBoard(b *Board, dir Direction) (gained int, moved bool) {
	toward := dir.toward()
	for i := range BoardSize {
		line, score := compact(b.GetLine(dir, i), toward)
		if b.SetLine(dir, i, line) {
			moved = true
		}
		gained += score
	}
	return gained, moved
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(b *Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if b.grid[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any cell equals its right or down neighbour.
func HasPossibleMerge(b *Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			val := b.grid[r][c]
			if val == 0 {
				continue
			}
			if c < BoardSize-1 && b.grid[r][c+1] == val {
				return true
			}
			if r < BoardSize-1 && b.grid[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// IsTerminal returns true if the board is full and no merge is possible.
func IsTerminal(b *Board) bool {
	return !HasEmptyCell(b) && !HasPossibleMerge(b)
}
