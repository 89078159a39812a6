package pathfind

import (
	"testing"

	"hexbattle/internal/hexcoord"
	"hexbattle/internal/hexgrid"
)

func TestNextStepMovesCloser(t *testing.T) {
	g := hexgrid.New()
	start := hexcoord.Coord{Q: 0, R: 0}
	goal := hexcoord.Coord{Q: 3, R: 0}

	next, ok := NextStep(g, start, goal)
	if !ok {
		t.Fatal("expected a path")
	}
	if next.Distance(goal) >= start.Distance(goal) {
		t.Fatalf("step %v did not get closer to goal %v from %v", next, goal, start)
	}
}

func TestNextStepRoutesAroundOccupant(t *testing.T) {
	g := hexgrid.New()
	start := hexcoord.Coord{Q: 0, R: 0}
	goal := hexcoord.Coord{Q: 2, R: 0}
	blocker := hexcoord.Coord{Q: 1, R: 0}
	g.Place("blocker", blocker)

	next, ok := NextStep(g, start, goal)
	if !ok {
		t.Fatal("expected a path around the blocker")
	}
	if next == blocker {
		t.Fatal("should not step onto an occupied hex")
	}
}

func TestNextStepSameHexReturnsFalse(t *testing.T) {
	g := hexgrid.New()
	c := hexcoord.Coord{Q: 0, R: 0}
	if _, ok := NextStep(g, c, c); ok {
		t.Fatal("start==goal should report no step needed")
	}
}
