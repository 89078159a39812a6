package targeting

import (
	"testing"

	"hexbattle/internal/hexcoord"
	"hexbattle/internal/unit"
)

func u(id unit.ID, q, r int, hp float64) *unit.Unit {
	un := unit.NewUnit(id, unit.TeamB, map[unit.StatKey]float64{unit.MaxHP: 1000}, 100, hexcoord.Coord{Q: q, R: r})
	un.HP = hp
	return un
}

func TestNearestPicksClosest(t *testing.T) {
	self := u("self", 0, 0, 1000)
	self.Team = unit.TeamA
	far := u("far", 5, 0, 1000)
	near := u("near", 1, 0, 1000)

	got := Select(Nearest, Request{Self: self, Candidates: []*unit.Unit{far, near}})
	if got.ID != "near" {
		t.Fatalf("got %v, want near", got.ID)
	}
}

func TestLowestHPPercent(t *testing.T) {
	self := u("self", 0, 0, 1000)
	a := u("a", 1, 0, 900) // 90%
	b := u("b", 2, 0, 100) // 10%

	got := Select(LowestHPPercent, Request{Self: self, Candidates: []*unit.Unit{a, b}})
	if got.ID != "b" {
		t.Fatalf("got %v, want b", got.ID)
	}
}

func TestMaxRangeExcludesOutOfRange(t *testing.T) {
	self := u("self", 0, 0, 1000)
	near := u("near", 1, 0, 1000)
	far := u("far", 10, 0, 1000)

	got := Select(Nearest, Request{Self: self, Candidates: []*unit.Unit{near, far}, MaxRange: 2})
	if got.ID != "near" {
		t.Fatalf("got %v, want near (far should be filtered by range)", got.ID)
	}
}
