package projectile

import (
	"testing"

	"hexbattle/internal/damage"
	"hexbattle/internal/event"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/hexgrid"
	"hexbattle/internal/rng"
	"hexbattle/internal/simctx"
	"hexbattle/internal/unit"
)

type fakeSim struct {
	grid  *hexgrid.Grid
	r     *rng.Stream
	units map[unit.ID]*unit.Unit
}

func newFakeSim(units ...*unit.Unit) *fakeSim {
	g := hexgrid.New()
	byID := map[unit.ID]*unit.Unit{}
	for _, u := range units {
		byID[u.ID] = u
		g.Place(hexgrid.UnitID(u.ID), u.Pos)
	}
	return &fakeSim{grid: g, r: rng.New(3), units: byID}
}

func (f *fakeSim) Tick() int                     { return 0 }
func (f *fakeSim) Grid() *hexgrid.Grid            { return f.grid }
func (f *fakeSim) RNG() *rng.Stream               { return f.r }
func (f *fakeSim) Log(ev event.Event)             {}
func (f *fakeSim) FindUnit(id unit.ID) *unit.Unit { return f.units[id] }
func (f *fakeSim) LiveUnits() []*unit.Unit        { return nil }
func (f *fakeSim) LiveEnemiesOf(team int) []*unit.Unit { return nil }
func (f *fakeSim) LiveAlliesOf(team int, excluding unit.ID) []*unit.Unit { return nil }
func (f *fakeSim) SpawnProjectile(spec simctx.ProjectileSpec) {}
func (f *fakeSim) ApplyEffectRef(caster, target *unit.Unit, ref simctx.EffectRef, star int) simctx.EffectOutcome {
	return simctx.EffectOutcome{}
}
func (f *fakeSim) CreateZone(center hexcoord.Coord, spec simctx.AoESpec, effect simctx.EffectRef, intervalTicks, durationTicks, star int, casterID unit.ID) {
}
func (f *fakeSim) ScheduleInterval(effect simctx.EffectRef, target unit.ID, intervalTicks, durationTicks, star int, casterID unit.ID) {
}
func (f *fakeSim) AmplifiersFor(caster *unit.Unit) damage.Amplifiers { return damage.Amplifiers{} }
func (f *fakeSim) GrantDamageMana(target *unit.Unit, raw, mitigated float64) {}

func testUnit(id unit.ID, team unit.Team, pos hexcoord.Coord) *unit.Unit {
	return unit.NewUnit(id, team, map[unit.StatKey]float64{unit.MaxHP: 1000}, 0, pos)
}

func TestAdvanceBallisticStepsTowardCommittedDest(t *testing.T) {
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 4})
	sim := newFakeSim(target)
	p := &Projectile{
		SourceID: "s", TargetID: "t", Speed: 1, CanMiss: true,
		Pos: hexcoord.Coord{}, Dest: hexcoord.Coord{Q: 4}, alive: true,
	}
	out := Advance(sim, p)
	if out.Impacted || out.Missed {
		t.Fatalf("expected in-flight outcome, got %+v", out)
	}
	if p.Pos.Q != 1 {
		t.Fatalf("Pos.Q = %d, want 1 after one tick at speed 1", p.Pos.Q)
	}
}

func TestAdvanceImpactsWhenDistanceWithinSpeed(t *testing.T) {
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 1})
	sim := newFakeSim(target)
	p := &Projectile{
		SourceID: "s", TargetID: "t", Speed: 5,
		Pos: hexcoord.Coord{}, Dest: hexcoord.Coord{Q: 1}, alive: true,
	}
	out := Advance(sim, p)
	if !out.Impacted {
		t.Fatalf("expected impact, got %+v", out)
	}
	if p.alive {
		t.Fatal("projectile should be dead after impact")
	}
}

func TestAdvanceHomingRetracksMovedTarget(t *testing.T) {
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 1})
	sim := newFakeSim(target)
	p := &Projectile{
		SourceID: "s", TargetID: "t", Speed: 5, Homing: true,
		Pos: hexcoord.Coord{}, Dest: hexcoord.Coord{Q: 1}, alive: true,
	}
	target.Pos = hexcoord.Coord{Q: 2}
	out := Advance(sim, p)
	if !out.Impacted || out.ImpactAt != (hexcoord.Coord{Q: 2}) {
		t.Fatalf("expected homing impact at retracked hex Q=2, got %+v", out)
	}
}

func TestResolveImpactMissesWhenNonHomingTargetMoved(t *testing.T) {
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 1})
	sim := newFakeSim(target)
	p := &Projectile{SourceID: "s", TargetID: "t", CanMiss: true, alive: true}
	target.Pos = hexcoord.Coord{Q: 9}
	out := resolveImpact(sim, p, hexcoord.Coord{Q: 1})
	if !out.Missed {
		t.Fatalf("expected miss, got %+v", out)
	}
}

func TestResolveImpactHitsWhenTargetStillAtDest(t *testing.T) {
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 1})
	sim := newFakeSim(target)
	p := &Projectile{SourceID: "s", TargetID: "t", CanMiss: true, alive: true}
	out := resolveImpact(sim, p, hexcoord.Coord{Q: 1})
	if !out.Impacted {
		t.Fatalf("expected impact, got %+v", out)
	}
}

func TestResolveImpactAoEAlwaysDetonates(t *testing.T) {
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 1})
	sim := newFakeSim(target)
	target.Pos = hexcoord.Coord{Q: 9}
	p := &Projectile{SourceID: "s", TargetID: "t", CanMiss: true, alive: true, AoE: &simctx.AoESpec{Shape: "circle", Radius: 2}}
	out := resolveImpact(sim, p, hexcoord.Coord{Q: 1})
	if !out.Impacted {
		t.Fatalf("expected AoE impact regardless of target position, got %+v", out)
	}
}

func TestManagerSpawnAndPrune(t *testing.T) {
	m := NewManager()
	p := m.Spawn(simctx.ProjectileSpec{SourceID: "s", TargetID: "t", Speed: 5, StartHex: hexcoord.Coord{}}, hexcoord.Coord{Q: 1})
	if len(m.Live()) != 1 {
		t.Fatalf("expected 1 live projectile, got %d", len(m.Live()))
	}
	p.alive = false
	m.Prune()
	if len(m.Live()) != 0 {
		t.Fatalf("expected 0 live after prune, got %d", len(m.Live()))
	}
}
