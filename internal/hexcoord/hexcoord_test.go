package hexcoord

import "testing"

func TestDistance(t *testing.T) {
	a := Coord{Q: 0, R: 0}
	b := Coord{Q: 2, R: 1}
	if got := a.Distance(b); got != 3 {
		t.Errorf("distance = %d, want 3", got)
	}
}

func TestNeighborsCount(t *testing.T) {
	c := Coord{Q: 1, R: -2}
	ns := c.Neighbors()
	seen := map[Coord]bool{}
	for _, n := range ns {
		if seen[n] {
			t.Fatalf("duplicate neighbor %v", n)
		}
		seen[n] = true
		if n.Distance(c) != 1 {
			t.Errorf("neighbor %v not adjacent to %v", n, c)
		}
	}
}

func TestLineToEndpoints(t *testing.T) {
	a := Coord{Q: 0, R: 0}
	b := Coord{Q: 3, R: 0}
	line := a.LineTo(b)
	if line[0] != a || line[len(line)-1] != b {
		t.Errorf("line endpoints = %v, %v, want %v, %v", line[0], line[len(line)-1], a, b)
	}
	if len(line) != 4 {
		t.Errorf("line length = %d, want 4", len(line))
	}
}

func TestRingSize(t *testing.T) {
	c := Coord{}
	for radius := 0; radius <= 3; radius++ {
		ring := c.Ring(radius)
		want := 1
		if radius > 0 {
			want = 6 * radius
		}
		if len(ring) != want {
			t.Errorf("ring(%d) size = %d, want %d", radius, len(ring), want)
		}
		for _, h := range ring {
			if h.Distance(c) != radius {
				t.Errorf("ring(%d) hex %v at distance %d", radius, h, h.Distance(c))
			}
		}
	}
}

func TestCircleContainsCenter(t *testing.T) {
	c := Coord{Q: 5, R: -2}
	circ := c.Circle(2)
	found := false
	for _, h := range circ {
		if h == c {
			found = true
		}
	}
	if !found {
		t.Error("circle does not contain center")
	}
}
