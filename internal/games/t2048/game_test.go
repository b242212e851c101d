package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    seed,
		Rules:   core.DefaultRules(),
	}
}

func TestCompactLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    Line
		expected Line
		score    int
	}{
		{
			name:     "simple merge",
			input:    Line{2, 2, 0, 0},
			expected: Line{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    Line{2, 2, 2, 0},
			expected: Line{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    Line{2, 2, 2, 2},
			expected: Line{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "no merge possible",
			input:    Line{2, 4, 8, 16},
			expected: Line{2, 4, 8, 16},
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    Line{0, 0, 2, 2},
			expected: Line{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    Line{2, 0, 0, 2},
			expected: Line{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merged tile does not cascade",
			input:    Line{2, 2, 4, 0},
			expected: Line{4, 4, 0, 0},
			score:    4,
		},
		{
			name:     "no change needed",
			input:    Line{4, 2, 0, 0},
			expected: Line{4, 2, 0, 0},
			score:    0,
		},
		{
			name:     "empty row",
			input:    Line{0, 0, 0, 0},
			expected: Line{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "single tile",
			input:    Line{0, 4, 0, 0},
			expected: Line{4, 0, 0, 0},
			score:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := compact(tt.input, towardLow)
			if result != tt.expected {
				t.Errorf("compact(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("compact(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestCompactRight(t *testing.T) {
	tests := []struct {
		input    Line
		expected Line
		score    int
	}{
		{Line{0, 2, 2, 0}, Line{0, 0, 0, 4}, 4},
		{Line{2, 2, 2, 0}, Line{0, 0, 2, 4}, 4},
		{Line{2, 2, 2, 2}, Line{0, 0, 4, 4}, 8},
		{Line{4, 2, 2, 0}, Line{0, 0, 4, 4}, 4},
		{Line{2, 4, 8, 16}, Line{2, 4, 8, 16}, 0},
		{Line{8, 0, 0, 0}, Line{0, 0, 0, 8}, 0},
	}

	for _, tt := range tests {
		result, score := compact(tt.input, towardHigh)
		if result != tt.expected {
			t.Errorf("compact(%v, right) = %v, want %v", tt.input, result, tt.expected)
		}
		if score != tt.score {
			t.Errorf("compact(%v, right) score = %d, want %d", tt.input, score, tt.score)
		}
	}
}

// naiveCompact drops zeros, merges adjacent pairs scanning from the target end
// and pads the result back to full length.
func naiveCompact(line Line, toward end) (Line, int) {
	var dense []int
	for _, v := range line {
		if v != 0 {
			dense = append(dense, v)
		}
	}
	if toward == towardHigh {
		for i, j := 0, len(dense)-1; i < j; i, j = i+1, j-1 {
			dense[i], dense[j] = dense[j], dense[i]
		}
	}

	var merged []int
	score := 0
	for i := 0; i < len(dense); i++ {
		if i+1 < len(dense) && dense[i] == dense[i+1] {
			merged = append(merged, dense[i]*2)
			score += dense[i] * 2
			i++
			continue
		}
		merged = append(merged, dense[i])
	}

	var out Line
	for i, v := range merged {
		if toward == towardHigh {
			out[BoardSize-1-i] = v
		} else {
			out[i] = v
		}
	}
	return out, score
}

func TestCompactMatchesNaive(t *testing.T) {
	values := []int{0, 2, 4, 8}
	for a := range values {
		for b := range values {
			for c := range values {
				for d := range values {
					line := Line{values[a], values[b], values[c], values[d]}
					for _, toward := range []end{towardLow, towardHigh} {
						got, gotScore := compact(line, toward)
						want, wantScore := naiveCompact(line, toward)
						if got != want || gotScore != wantScore {
							t.Fatalf("compact(%v, %d) = %v/%d, want %v/%d", line, toward, got, gotScore, want, wantScore)
						}
					}
				}
			}
		}
	}
}

func TestSlideLeft(t *testing.T) {
	b := NewBoard(Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}, 0)

	expected := Grid{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	score, changed := slideBoard(b, DirLeft)

	if b.Grid() != expected {
		t.Errorf("slide left: got\n%v\nwant\n%v", b.Grid(), expected)
	}

	if !changed {
		t.Error("slide left should indicate board changed")
	}

	expectedScore := 4 + 8 + 8
	if score != expectedScore {
		t.Errorf("slide left score = %d, want %d", score, expectedScore)
	}
}

func TestSlideRight(t *testing.T) {
	b := NewBoard(Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}, 0)

	expected := Grid{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	_, changed := slideBoard(b, DirRight)

	if b.Grid() != expected {
		t.Errorf("slide right: got\n%v\nwant\n%v", b.Grid(), expected)
	}

	if !changed {
		t.Error("slide right should indicate board changed")
	}
}

func TestSlideUp(t *testing.T) {
	b := NewBoard(Grid{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	}, 0)

	expected := Grid{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	_, changed := slideBoard(b, DirUp)

	if b.Grid() != expected {
		t.Errorf("slide up: got\n%v\nwant\n%v", b.Grid(), expected)
	}

	if !changed {
		t.Error("slide up should indicate board changed")
	}
}

func TestSlideDown(t *testing.T) {
	b := NewBoard(Grid{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	}, 0)

	expected := Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	_, changed := slideBoard(b, DirDown)

	if b.Grid() != expected {
		t.Errorf("slide down: got\n%v\nwant\n%v", b.Grid(), expected)
	}

	if !changed {
		t.Error("slide down should indicate board changed")
	}
}

func TestNoChangeNoMove(t *testing.T) {
	b := NewBoard(Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0)

	// Sliding left when tiles are already left-aligned
	_, changed := slideBoard(b, DirLeft)

	if changed {
		t.Error("slide left should not change already left-aligned tiles")
	}
}

func TestGetSetLine(t *testing.T) {
	b := NewBoard(Grid{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}, 0)

	if got := b.GetLine(DirLeft, 1); got != (Line{5, 6, 7, 8}) {
		t.Errorf("GetLine(left, 1) = %v, want [5 6 7 8]", got)
	}
	if got := b.GetLine(DirDown, 2); got != (Line{3, 7, 11, 15}) {
		t.Errorf("GetLine(down, 2) = %v, want [3 7 11 15]", got)
	}

	if b.SetLine(DirUp, 0, Line{1, 5, 9, 13}) {
		t.Error("SetLine with identical values should report no change")
	}
	if !b.SetLine(DirUp, 0, Line{1, 5, 9, 0}) {
		t.Error("SetLine with a changed value should report a change")
	}
	if b.Get(3, 0) != 0 {
		t.Errorf("Get(3, 0) = %d, want 0", b.Get(3, 0))
	}
}

func TestIsTerminal(t *testing.T) {
	// Checkerboard: full, no equal neighbours
	checker := NewBoard(Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}, 0)

	if !IsTerminal(checker) {
		t.Error("checkerboard should be terminal")
	}

	// Full board with a vertical pair
	withMerge := NewBoard(Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{2, 8, 16, 32},
	}, 0)

	if IsTerminal(withMerge) {
		t.Error("board with possible merge should not be terminal")
	}

	withEmpty := NewBoard(Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 4096},
		{8192, 16384, 32768, 65536},
	}, 0)

	if IsTerminal(withEmpty) {
		t.Error("board with empty cell should not be terminal")
	}
}

func TestMaxTile(t *testing.T) {
	b := NewBoard(Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	}, 0)

	if got := b.MaxTile(); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
}

func TestEmptyCells(t *testing.T) {
	b := NewBoard(Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}, 0)

	cells := b.EmptyCells()
	if len(cells) != 8 {
		t.Fatalf("EmptyCells count = %d, want 8", len(cells))
	}
	if cells[0] != (Cell{Row: 0, Col: 1}) || cells[7] != (Cell{Row: 3, Col: 2}) {
		t.Errorf("EmptyCells not row-major: %v", cells)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"DOWN", DirDown},
		{" Left ", DirLeft},
		{"right", DirRight},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != strings.ToLower(strings.TrimSpace(tt.in)) {
			t.Errorf("%v.String() = %q", got, got.String())
		}
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
}

func TestDeterministicReset(t *testing.T) {
	cfg := testConfig(12345)

	g1 := New()
	g1.Reset(cfg)

	g2 := New()
	g2.Reset(cfg)

	if g1.Snapshot().Board != g2.Snapshot().Board {
		t.Errorf("same seed should produce same initial board:\n%v\nvs\n%v", g1.Snapshot().Board, g2.Snapshot().Board)
	}

	moves := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
	for i := range 40 {
		in := core.FrameOf(moves[i%len(moves)])
		g1.Step(in)
		g2.Step(in)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("same seed and input should replay identically:\n%+v\nvs\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestTargetReached(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	g.engine = NewEngine(&seqSource{}, WithTarget(128), WithBoard(Grid{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))

	res := g.Step(core.FrameOf(core.ActionLeft))

	if !res.Moved {
		t.Fatal("left should move")
	}
	if !res.State.Won {
		t.Error("reaching the target tile should win")
	}
	if !g.celebrating {
		t.Error("overlay should show when the target is first reached")
	}
	if g.Snapshot().State != StateWon {
		t.Errorf("Snapshot State = %s, want %s", g.Snapshot().State, StateWon)
	}

	// Play continues after the win; the overlay clears on the next move.
	res = g.Step(core.FrameOf(core.ActionRight))
	if !res.Moved {
		t.Fatal("right should move")
	}
	if g.celebrating {
		t.Error("overlay should clear after the next move")
	}
}

func TestEndlessModeNoWin(t *testing.T) {
	g := NewEndless()
	g.Reset(testConfig(42))

	if g.engine.Target() != 0 {
		t.Fatalf("endless target = %d, want 0", g.engine.Target())
	}

	g.engine = NewEngine(&seqSource{}, WithTarget(g.engine.Target()), WithBoard(Grid{
		{8192, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))

	g.Step(core.FrameOf(core.ActionDown))

	if g.celebrating {
		t.Error("endless mode should not celebrate")
	}
	if g.State().Won {
		t.Error("endless mode should not have win state")
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))
	before := g.Snapshot().Board

	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause action should pause")
	}

	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		if res := g.Step(core.FrameOf(a)); res.Moved {
			t.Errorf("%v moved while paused", a)
		}
	}
	if g.Snapshot().Board != before {
		t.Error("board changed while paused")
	}

	g.Step(core.FrameOf(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause action should resume")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 5, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("Snapshot State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}

	screen := core.NewScreen(20, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("render should report small window, got:\n%s", screen.String())
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := New()
	g.Reset(testConfig(11))
	g.Step(core.FrameOf(core.ActionLeft))
	before := g.Snapshot()

	g.Resize(20, 5)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("Snapshot State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	if res := g.Step(core.FrameOf(core.ActionRight)); res.Moved {
		t.Error("moves should be ignored while the window is too small")
	}

	g.Resize(80, 24)
	after := g.Snapshot()
	if after.Board != before.Board || after.Score != before.Score {
		t.Error("resize should not change the board")
	}
	if after.State == StatePausedSmall {
		t.Error("growing the window should resume play")
	}
}

func TestRenderShowsTiles(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	g.engine = NewEngine(&seqSource{}, WithBoard(Grid{
		{2, 0, 0, 0},
		{0, 128, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2048},
	}, 1234))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 1234", "128", "2048", "Max: 2048/2048"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshot(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	snap := g.Snapshot()

	if snap.Mode != "classic" {
		t.Errorf("Snapshot Mode = %s, want classic", snap.Mode)
	}
	if snap.Target != DefaultTarget {
		t.Errorf("Snapshot Target = %d, want %d", snap.Target, DefaultTarget)
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want %s", snap.State, StatePlaying)
	}
	if snap.Score != 0 || snap.Moves != 0 {
		t.Errorf("fresh snapshot score/moves = %d/%d, want 0/0", snap.Score, snap.Moves)
	}

	tiles := 0
	for _, row := range snap.Board {
		for _, v := range row {
			if v != 0 {
				tiles++
			}
		}
	}
	if tiles != 2 {
		t.Errorf("fresh board has %d tiles, want 2", tiles)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeClassic, false},
		{"classic", ModeClassic, false},
		{" Endless ", ModeEndless, false},
		{"speedrun", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModeGameID(t *testing.T) {
	if got := ModeClassic.GameID(); got != "2048" {
		t.Errorf("ModeClassic.GameID() = %q, want 2048", got)
	}
	if got := ModeEndless.GameID(); got != "2048_endless" {
		t.Errorf("ModeEndless.GameID() = %q, want 2048_endless", got)
	}
}

func TestNewSeededEngine(t *testing.T) {
	a := NewSeededEngine(ModeClassic, 99, core.DefaultRules())
	b := NewSeededEngine(ModeClassic, 99, core.DefaultRules())

	if a.State().Grid != b.State().Grid {
		t.Errorf("equal seeds should produce equal boards")
	}
	if a.Target() != DefaultTarget {
		t.Errorf("classic Target = %d, want %d", a.Target(), DefaultTarget)
	}

	e := NewSeededEngine(ModeEndless, 99, core.Rules{SpawnFourProb: 0.1, Target: 512})
	if e.Target() != 0 {
		t.Errorf("endless Target = %d, want 0", e.Target())
	}

	c := NewSeededEngine(ModeClassic, 99, core.Rules{SpawnFourProb: 0.1, Target: 512})
	if c.Target() != 512 {
		t.Errorf("custom Target = %d, want 512", c.Target())
	}
}

func TestNewSeededEngineKeepsZeroRules(t *testing.T) {
	e := NewSeededEngine(ModeClassic, 1, core.Rules{SpawnFourProb: 0, Target: 0})

	if e.Target() != 0 {
		t.Errorf("Target = %d, want 0", e.Target())
	}
	if e.fourProb != 0 {
		t.Errorf("fourProb = %v, want 0", e.fourProb)
	}

	// With no chance of a 4, every spawn over a long game is a 2.
	for i := 0; i < 200 && !e.GameOver(); i++ {
		res, err := e.Apply(Directions()[i%4])
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if res.Spawned != nil && res.Spawned.Value != 2 {
			t.Fatalf("move %d spawned %d, want 2", i, res.Spawned.Value)
		}
	}
	if e.Won() {
		t.Error("zero target should never mark the game as won")
	}
}
