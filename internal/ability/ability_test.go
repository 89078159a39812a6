package ability

import (
	"testing"

	"hexbattle/internal/damage"
	"hexbattle/internal/effects"
	"hexbattle/internal/event"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/hexgrid"
	"hexbattle/internal/rng"
	"hexbattle/internal/simctx"
	"hexbattle/internal/targeting"
	"hexbattle/internal/unit"
)

type fakeSim struct {
	grid  *hexgrid.Grid
	r     *rng.Stream
	units map[unit.ID]*unit.Unit
	spawned []simctx.ProjectileSpec
}

func newFakeSim(units ...*unit.Unit) *fakeSim {
	g := hexgrid.New()
	byID := map[unit.ID]*unit.Unit{}
	for _, u := range units {
		byID[u.ID] = u
		g.Place(hexgrid.UnitID(u.ID), u.Pos)
	}
	return &fakeSim{grid: g, r: rng.New(7), units: byID}
}

func (f *fakeSim) Tick() int                      { return 0 }
func (f *fakeSim) Grid() *hexgrid.Grid             { return f.grid }
func (f *fakeSim) RNG() *rng.Stream                { return f.r }
func (f *fakeSim) Log(ev event.Event)              {}
func (f *fakeSim) FindUnit(id unit.ID) *unit.Unit  { return f.units[id] }

func (f *fakeSim) LiveUnits() []*unit.Unit {
	var out []*unit.Unit
	for _, u := range f.units {
		out = append(out, u)
	}
	return out
}

func (f *fakeSim) LiveEnemiesOf(team int) []*unit.Unit {
	var out []*unit.Unit
	for _, u := range f.units {
		if int(u.Team) != team {
			out = append(out, u)
		}
	}
	return out
}

func (f *fakeSim) LiveAlliesOf(team int, excluding unit.ID) []*unit.Unit {
	var out []*unit.Unit
	for _, u := range f.units {
		if int(u.Team) == team && u.ID != excluding {
			out = append(out, u)
		}
	}
	return out
}

func (f *fakeSim) SpawnProjectile(spec simctx.ProjectileSpec) {
	f.spawned = append(f.spawned, spec)
}

func (f *fakeSim) ApplyEffectRef(caster, target *unit.Unit, ref simctx.EffectRef, star int) simctx.EffectOutcome {
	e := effects.FromRef(ref)
	if e == nil {
		return simctx.EffectOutcome{}
	}
	return effects.NewRegistry().Apply(f, caster, target, e, star)
}

func (f *fakeSim) CreateZone(center hexcoord.Coord, spec simctx.AoESpec, effect simctx.EffectRef, intervalTicks, durationTicks, star int, casterID unit.ID) {
}

func (f *fakeSim) ScheduleInterval(effect simctx.EffectRef, target unit.ID, intervalTicks, durationTicks, star int, casterID unit.ID) {
}

func (f *fakeSim) AmplifiersFor(caster *unit.Unit) damage.Amplifiers { return damage.Amplifiers{} }

func (f *fakeSim) GrantDamageMana(target *unit.Unit, raw, mitigated float64) {}

func testUnit(id unit.ID, team unit.Team, pos hexcoord.Coord) *unit.Unit {
	return unit.NewUnit(id, team, map[unit.StatKey]float64{
		unit.MaxHP: 1000, unit.AD: 50,
	}, 100, pos)
}

func TestChooseTargetNearest(t *testing.T) {
	caster := testUnit("c", unit.TeamA, hexcoord.Coord{})
	far := testUnit("far", unit.TeamB, hexcoord.Coord{Q: 5})
	near := testUnit("near", unit.TeamB, hexcoord.Coord{Q: 1})
	sim := newFakeSim(caster, far, near)

	def := &Definition{TargetPolicy: targeting.Nearest, TargetRange: 10}
	got := ChooseTarget(sim, caster, def)
	if got.ID != "near" {
		t.Fatalf("got %v, want near", got.ID)
	}
}

func TestChooseTargetTauntOverridesPolicy(t *testing.T) {
	caster := testUnit("c", unit.TeamA, hexcoord.Coord{})
	near := testUnit("near", unit.TeamB, hexcoord.Coord{Q: 1})
	tauntedBy := testUnit("taunter", unit.TeamB, hexcoord.Coord{Q: 5})
	sim := newFakeSim(caster, near, tauntedBy)

	caster.Debuffs.ApplyTaunt(tauntedBy.ID, 30)
	def := &Definition{TargetPolicy: targeting.Nearest, TargetRange: 10}
	got := ChooseTarget(sim, caster, def)
	if got.ID != tauntedBy.ID {
		t.Fatalf("got %v, want taunter (nearest policy should be overridden)", got.ID)
	}
}

func TestExecuteInstantAppliesDamage(t *testing.T) {
	caster := testUnit("c", unit.TeamA, hexcoord.Coord{})
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 1})
	sim := newFakeSim(caster, target)

	def := &Definition{
		Delivery: DeliveryInstant,
		Effects:  []*effects.Effect{{Kind: effects.KindDamage, Amount: 40, DamageType: damage.Physical}},
	}
	Execute(sim, effects.NewRegistry(), caster, target, def, 1)
	if target.HP != 960 {
		t.Fatalf("target HP = %v, want 960", target.HP)
	}
}

func TestExecuteProjectileSpawnsInsteadOfApplying(t *testing.T) {
	caster := testUnit("c", unit.TeamA, hexcoord.Coord{})
	target := testUnit("t", unit.TeamB, hexcoord.Coord{Q: 3})
	sim := newFakeSim(caster, target)

	def := &Definition{
		Delivery:   DeliveryProjectile,
		Projectile: simctx.ProjectileSpec{Speed: 2},
		Effects:    []*effects.Effect{{Kind: effects.KindDamage, Amount: 40, DamageType: damage.Physical}},
	}
	Execute(sim, effects.NewRegistry(), caster, target, def, 1)
	if target.HP != 1000 {
		t.Fatalf("target HP = %v, want 1000 (damage deferred to projectile impact)", target.HP)
	}
	if len(sim.spawned) != 1 {
		t.Fatalf("expected one spawned projectile, got %d", len(sim.spawned))
	}
}

func TestExecuteAreaHitsEveryoneInFootprint(t *testing.T) {
	caster := testUnit("c", unit.TeamA, hexcoord.Coord{})
	t1 := testUnit("t1", unit.TeamB, hexcoord.Coord{Q: 2})
	t2 := testUnit("t2", unit.TeamB, hexcoord.Coord{Q: 2, R: 1})
	sim := newFakeSim(caster, t1, t2)

	def := &Definition{
		Delivery: DeliveryArea,
		AoE:      simctx.AoESpec{Shape: "circle", Radius: 2, Affinity: "enemies"},
		Effects:  []*effects.Effect{{Kind: effects.KindDamage, Amount: 20, DamageType: damage.Physical}},
	}
	Execute(sim, effects.NewRegistry(), caster, t1, def, 1)
	if t1.HP != 980 || t2.HP != 980 {
		t.Fatalf("t1=%v t2=%v, want both 980", t1.HP, t2.HP)
	}
}
