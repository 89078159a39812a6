// Package simctx defines the narrow interface effect, ability, and
// projectile logic use to reach back into the running simulation (spawn a
// projectile, look up a unit by id, log an event, draw from the shared
// RNG) without importing internal/engine — which instead implements this
// interface, avoiding an import cycle. Mirrors spec.md §4.10's
// "(caster, target, star, sim) -> result" signature.
package simctx

import (
	"hexbattle/internal/damage"
	"hexbattle/internal/event"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/hexgrid"
	"hexbattle/internal/rng"
	"hexbattle/internal/unit"
)

// ProjectileSpec describes a projectile to spawn, handed to Sim by
// ability execution (spec.md §4.9 "Projectile").
type ProjectileSpec struct {
	SourceID    unit.ID
	TargetID    unit.ID
	Homing      bool
	CanMiss     bool
	Speed       float64
	StartHex    hexcoord.Coord
	AngleOffset float64 // for swarm/spread deliveries
	StarLevel   int
	OnHit       []EffectRef
	AoEOnImpact *AoESpec
}

// AoESpec describes an area-of-effect shape anchored at a hex, applied by
// either an area-delivery ability or a projectile's impact.
type AoESpec struct {
	Shape      string // "circle" | "cone" | "line"
	Radius     int
	HalfAngle  float64
	Width      int
	Affinity   string // "enemies" | "allies" | "all"
	CasterTeam int
}

// EffectRef is an opaque handle to an effect descriptor; concrete type
// lives in internal/effects, referenced here only by interface to avoid
// the dependency. internal/effects converts back with effects.FromRef.
type EffectRef interface {
	Kind() string
}

// Sim is implemented by internal/engine.Simulation.
type Sim interface {
	Tick() int
	Grid() *hexgrid.Grid
	RNG() *rng.Stream
	Log(ev event.Event)
	FindUnit(id unit.ID) *unit.Unit
	LiveUnits() []*unit.Unit
	LiveEnemiesOf(team int) []*unit.Unit
	LiveAlliesOf(team int, excluding unit.ID) []*unit.Unit
	SpawnProjectile(spec ProjectileSpec)
	ApplyEffectRef(caster, target *unit.Unit, ref EffectRef, star int) EffectOutcome
	CreateZone(center hexcoord.Coord, spec AoESpec, effect EffectRef, intervalTicks, durationTicks, star int, casterID unit.ID)
	ScheduleInterval(effect EffectRef, target unit.ID, intervalTicks, durationTicks, star int, casterID unit.ID)
	// AmplifiersFor returns caster's combined item/trait/buff damage-amp
	// buckets, for any damage-producing effect to pass through to
	// damage.Resolve — not just basic attacks (spec.md §4.7 step 5).
	AmplifiersFor(caster *unit.Unit) damage.Amplifiers
	// GrantDamageMana applies spec.md §4.6's mana-on-damage-taken formula
	// (min(cap, raw*pre + mitigated*post), suppressed while target is
	// Casting) to every damage event, not just basic attacks.
	GrantDamageMana(target *unit.Unit, raw, mitigated float64)
}

// EffectOutcome is the result of applying one effect to one target:
// spec.md §4.10 "a result carrying success flag, numeric value actually
// applied, and an optional side-effect list".
type EffectOutcome struct {
	Success bool
	Value   float64
	Notes   string
}
