package game

import (
	"testing"
)

// borderWalls builds a grid with walls on the outer ring only.
func borderWalls(width, height int) *Grid {
	g := NewGrid(width, height)
	for x := 0; x < width; x++ {
		g.Set(x, 0, true)
		g.Set(x, height-1, true)
	}
	for y := 0; y < height; y++ {
		g.Set(0, y, true)
		g.Set(width-1, y, true)
	}
	return g
}

func TestPossibleActions_AtGridPoint(t *testing.T) {
	walls := borderWalls(5, 5)
	conf := Configuration{Pos: Position{X: 2, Y: 2}, Dir: Stop}

	got := PossibleActions(conf, walls)
	want := []Direction{North, South, East, West, Stop}
	if len(got) != len(want) {
		t.Fatalf("actions=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("actions[%d]=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestPossibleActions_WallsBlock(t *testing.T) {
	walls := borderWalls(5, 5)
	walls.Set(2, 3, true)

	conf := Configuration{Pos: Position{X: 2, Y: 2}, Dir: Stop}
	got := PossibleActions(conf, walls)
	want := []Direction{South, East, West, Stop}
	if len(got) != len(want) {
		t.Fatalf("actions=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("actions[%d]=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestPossibleActions_CornerAgent(t *testing.T) {
	walls := borderWalls(5, 5)
	conf := Configuration{Pos: Position{X: 1, Y: 1}, Dir: Stop}

	got := PossibleActions(conf, walls)
	want := []Direction{North, East, Stop}
	if len(got) != len(want) {
		t.Fatalf("actions=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("actions[%d]=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestPossibleActions_MidCellMustContinue(t *testing.T) {
	walls := borderWalls(7, 7)
	conf := Configuration{Pos: Position{X: 2.5, Y: 2}, Dir: East}

	got := PossibleActions(conf, walls)
	if len(got) != 1 || got[0] != East {
		t.Fatalf("mid-cell actions=%v want=[East]", got)
	}
}

func TestNearestPoint(t *testing.T) {
	cases := []struct {
		pos  Position
		want Point
	}{
		{Position{X: 2, Y: 2}, Point{X: 2, Y: 2}},
		{Position{X: 2.4, Y: 2}, Point{X: 2, Y: 2}},
		{Position{X: 2.5, Y: 2}, Point{X: 3, Y: 2}},
		{Position{X: 2, Y: 3.6}, Point{X: 2, Y: 4}},
	}
	for _, c := range cases {
		if got := NearestPoint(c.pos); got != c.want {
			t.Fatalf("NearestPoint(%v)=%v want=%v", c.pos, got, c.want)
		}
	}
}

func TestDirectionVectorRoundTrip(t *testing.T) {
	for _, d := range Directions {
		dx, dy := d.Vector()
		if got := VectorToDirection(dx, dy); got != d {
			t.Fatalf("round trip %v -> (%v,%v) -> %v", d, dx, dy, got)
		}
	}
}

func TestConfigurationSuccessor_StopKeepsFacing(t *testing.T) {
	conf := Configuration{Pos: Position{X: 3, Y: 3}, Dir: East}
	next := conf.Successor(0, 0)
	if next.Dir != East {
		t.Fatalf("dir=%v want=East", next.Dir)
	}
	if next.Pos != conf.Pos {
		t.Fatalf("pos=%v want=%v", next.Pos, conf.Pos)
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Fatalf("ParseDirection(%q)=%v,%v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("Sideways"); ok {
		t.Fatalf("ParseDirection accepted an unknown name")
	}
}
