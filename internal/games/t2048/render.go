package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1  // +1 for right border
	boardH = BoardSize*cellHeight + 1 // +1 for bottom border

	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + 1
)

// tileColors steps through warmer colors as tiles grow.
var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorYellow,
	8:    core.ColorBrightYellow,
	16:   core.ColorOrange,
	32:   core.ColorRed,
	64:   core.ColorBrightRed,
	128:  core.ColorMagenta,
	256:  core.ColorBrightMagenta,
	512:  core.ColorCyan,
	1024: core.ColorGreen,
}

// TileColor returns the color a tile of value v is drawn in.
func TileColor(v int) core.Color {
	if c, ok := tileColors[v]; ok {
		return c
	}
	if v > 1024 {
		return core.ColorGreen
	}
	return core.ColorDefault
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.engine == nil {
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and progress line.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := g.Title()
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	s := g.engine.State()
	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", s.Score))

	var info string
	if target := g.engine.Target(); target > 0 {
		info = fmt.Sprintf("Max: %d/%d", s.MaxTile, target)
	} else {
		info = fmt.Sprintf("Max: %d", s.MaxTile)
	}
	dst.DrawText(max(boardX, boardX+boardW-len(info)), 1, info)

	moves := fmt.Sprintf("Moves: %d", s.Moves)
	dst.DrawText(boardX+(boardW-len(moves))/2, 2, moves)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.Set(px, py, junction(x, y))

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	b := g.engine.Board()
	for r := range BoardSize {
		for c := range BoardSize {
			val := b.Get(r, c)
			if val == 0 {
				continue
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1
			dst.DrawColorText(cellX+padLeft, cellY, valStr, TileColor(val))
		}
	}
}

// junction picks the box-drawing rune for grid intersection (x, y).
func junction(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == BoardSize:
		return '┐'
	case y == BoardSize && x == 0:
		return '└'
	case y == BoardSize && x == BoardSize:
		return '┘'
	case y == 0:
		return '┬'
	case y == BoardSize:
		return '┴'
	case x == 0:
		return '├'
	case x == BoardSize:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays over the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.engine.GameOver():
		drawOverlay(dst, board, "GAME OVER", fmt.Sprintf("Score: %d", g.engine.Score()), "Press R to restart")
	case g.celebrating:
		drawOverlay(dst, board, fmt.Sprintf("%d reached!", g.engine.Target()), "Keep going!")
	}
}

// drawOverlay draws a boxed block of centered lines.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(box.X+(box.W-len(line))/2, box.Y+1+i, line)
	}
}
