// Package ability defines cast-able abilities: their cast-time phases
// (cast_start / effect_point / cast_end), target selection, and delivery
// mode (instant / projectile / area), per spec.md §4.9. Grounded on the
// teacher's skill dispatch in the now-deleted mini_bot_skill.go, rebuilt
// against internal/effects and internal/targeting instead of the
// teacher's square-grid skill table.
package ability

import (
	"math"

	"hexbattle/internal/effects"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/rng"
	"hexbattle/internal/simctx"
	"hexbattle/internal/targeting"
	"hexbattle/internal/unit"
)

// Delivery names how an ability's effects reach their target(s).
type Delivery string

const (
	DeliveryInstant    Delivery = "instant"
	DeliveryProjectile Delivery = "projectile"
	DeliveryArea       Delivery = "area"
)

// Definition is a loaded ability, shared by every unit that casts it
// (per-unit scaling comes from the caster's own Stats, not from copies of
// this struct).
type Definition struct {
	ID       string
	ManaCost float64 // informational only; mana is spent unconditionally on cast

	CastStartTicks  int // with EffectPointTicks, the time from trigger to effect_point
	EffectPointTicks int
	CastEndTicks    int

	TargetPolicy targeting.Policy
	TargetRange  int
	TargetStat   unit.StatKey

	Delivery Delivery
	AoE      simctx.AoESpec
	Projectile simctx.ProjectileSpec // Speed/Homing/CanMiss only; Source/Target/StartHex filled at cast time

	// ProjectileCount >1 turns a single-target projectile cast into a
	// swarm/spread volley (spec.md §4.9/§4.10): each shot aims at the same
	// chosen target but is rotated by an even fan offset across
	// SwarmSpreadAngleDeg, plus independent jitter up to SwarmJitterDeg.
	ProjectileCount     int
	SwarmSpreadAngleDeg float64
	SwarmJitterDeg      float64

	Effects []*effects.Effect
}

// TotalCastTicks is the full duration a unit spends in StateCasting.
func (d *Definition) TotalCastTicks() int {
	return d.CastStartTicks + d.EffectPointTicks + d.CastEndTicks
}

// Registry looks up ability definitions by id.
type Registry struct {
	defs map[string]*Definition
}

func NewRegistry() *Registry { return &Registry{defs: map[string]*Definition{}} }

func (r *Registry) Register(d *Definition) { r.defs[d.ID] = d }

func (r *Registry) Get(id string) *Definition { return r.defs[id] }

// ChooseTarget runs the ability's configured targeting policy over the
// live enemy roster. A taunt in effect overrides any policy: per
// spec.md §4.10, taunt overrides target selection to the taunter for
// its duration, so a taunted unit casts at its taunter regardless of
// what the ability would otherwise have picked.
func ChooseTarget(sim simctx.Sim, caster *unit.Unit, d *Definition) *unit.Unit {
	enemies := sim.LiveEnemiesOf(int(caster.Team))
	if tauntedBy, ok := caster.Debuffs.TauntedBy(); ok {
		for _, u := range enemies {
			if u.ID == tauntedBy {
				return u
			}
		}
	}
	return targeting.Select(d.TargetPolicy, targeting.Request{
		Self:       caster,
		Candidates: enemies,
		MaxRange:   d.TargetRange,
		StatKey:    d.TargetStat,
		RNG:        sim.RNG(),
	})
}

// Execute resolves the ability's payload at the effect point: instant
// abilities apply their effect list directly to the chosen target; area
// abilities apply it to every unit in the AoE footprint that matches the
// AoE's affinity (enemies unless set otherwise); projectile
// abilities hand off to the projectile manager via sim.SpawnProjectile
// instead of applying anything immediately.
func Execute(sim simctx.Sim, reg *effects.Registry, caster, target *unit.Unit, d *Definition, star int) {
	switch d.Delivery {
	case DeliveryProjectile:
		count := d.ProjectileCount
		if count < 1 {
			count = 1
		}
		spreadRad := d.SwarmSpreadAngleDeg * math.Pi / 180
		jitterRad := d.SwarmJitterDeg * math.Pi / 180
		var jitterStream *rng.Stream
		if count > 1 && jitterRad > 0 {
			jitterStream = sim.RNG().Fork("swarm-jitter:" + string(caster.ID) + ":" + d.ID)
		}
		for i := 0; i < count; i++ {
			spec := d.Projectile
			spec.SourceID = caster.ID
			spec.TargetID = target.ID
			spec.StartHex = caster.Pos
			spec.StarLevel = star
			if count > 1 {
				frac := float64(i)/float64(count-1) - 0.5
				spec.AngleOffset = frac * spreadRad
				if jitterStream != nil {
					spec.AngleOffset += jitterStream.RangeFloat(-jitterRad, jitterRad)
				}
			}
			for _, e := range d.Effects {
				spec.OnHit = append(spec.OnHit, e.AsRef())
			}
			sim.SpawnProjectile(spec)
		}
	case DeliveryArea:
		aoe := d.AoE
		aoe.CasterTeam = int(caster.Team)
		hexes := footprint(caster.Pos, target.Pos, aoe)
		set := make(map[[2]int]bool, len(hexes))
		for _, h := range hexes {
			set[[2]int{h.Q, h.R}] = true
		}
		for _, u := range affinityPool(sim, caster, aoe.Affinity) {
			if set[[2]int{u.Pos.Q, u.Pos.R}] {
				for _, e := range d.Effects {
					reg.Apply(sim, caster, u, e, star)
				}
			}
		}
	default: // instant
		for _, e := range d.Effects {
			reg.Apply(sim, caster, target, e, star)
		}
	}
}

// footprint resolves an AoESpec into the set of hexes it covers. origin
// is the caster's hex (the apex for cone/line shapes); target is the
// point the caster aimed at.
func footprint(origin, target hexcoord.Coord, aoe simctx.AoESpec) []hexcoord.Coord {
	switch aoe.Shape {
	case "cone":
		return hexcoord.Cone(origin, target, aoe.Radius, aoe.HalfAngle)
	case "line":
		return hexcoord.ThickLine(origin, target, aoe.Width)
	default:
		return target.Circle(aoe.Radius)
	}
}

func affinityPool(sim simctx.Sim, caster *unit.Unit, affinity string) []*unit.Unit {
	switch affinity {
	case "allies":
		return sim.LiveAlliesOf(int(caster.Team), caster.ID)
	case "all":
		return sim.LiveUnits()
	default:
		return sim.LiveEnemiesOf(int(caster.Team))
	}
}
