// Package effects implements the tagged-union effect descriptors that
// abilities and items apply to targets (spec.md §4.10), dispatched
// through a single exhaustive switch rather than per-kind interfaces —
// mirroring the teacher's ReactionResolver.TryTrigger switch-over-string
// reaction kind. Each descriptor carries the generic parameters its kind
// needs (Amount, Percent, DurationTicks, ...); unused fields for a given
// kind are simply left zero.
package effects

import (
	"fmt"

	"hexbattle/internal/damage"
	"hexbattle/internal/event"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/hexgrid"
	"hexbattle/internal/simctx"
	"hexbattle/internal/unit"
)

// Kind enumerates every behaviorally distinct effect (spec.md §4.10's
// damage-producing, resistance-debuff, crowd-control, support, movement,
// and special/meta buckets).
type Kind string

const (
	KindDamage          Kind = "damage"
	KindHybridDamage    Kind = "hybrid_damage"
	KindDot             Kind = "dot"  // scheduled repeated damage of a declared type, via sim.ScheduleInterval
	KindBurn            Kind = "burn" // true damage per tick, refresh-don't-stack, owned by unit.Debuffs directly
	KindExecute         Kind = "execute"
	KindPercentHPDamage Kind = "percent_hp_damage"
	KindSplashDamage    Kind = "splash_damage"
	KindRicochet        Kind = "ricochet"
	KindMultiHit        Kind = "multi_hit"
	KindDashThrough     Kind = "dash_through"

	KindSunder Kind = "sunder" // armor shred
	KindShred  Kind = "shred"  // magic resist shred
	KindWound  Kind = "wound"

	KindStun     Kind = "stun"
	KindSlow     Kind = "slow"
	KindChill    Kind = "chill" // slow + reduced ability haste, modeled as slow + no-haste-bonus
	KindSilence  Kind = "silence"
	KindDisarm   Kind = "disarm"
	KindKnockback Kind = "knockback"
	KindPull     Kind = "pull"
	KindTaunt    Kind = "taunt"

	KindHeal          Kind = "heal"
	KindHealOverTime  Kind = "heal_over_time"
	KindShield        Kind = "shield"
	KindBuff          Kind = "buff"
	KindBuffTeam      Kind = "buff_team"
	KindDecayingBuff  Kind = "decaying_buff"
	KindStackingBuff  Kind = "stacking_buff"
	KindManaGrant     Kind = "mana_grant"
	KindManaReave     Kind = "mana_reave"
	KindCleanse       Kind = "cleanse"

	KindDash            Kind = "dash"
	KindEffectGroup     Kind = "effect_group"
	KindCreateZone      Kind = "create_zone"
	KindIntervalTrigger Kind = "interval_trigger"
	KindPermanentStack  Kind = "permanent_stack"
	KindReplaceAttacks  Kind = "replace_attacks"
	KindTransform       Kind = "transform" // permanent ability swap on the target (spec.md §9 state-dependent variants)
)

// knownKinds backs configuration-time validation (spec.md §7.1's "unknown
// effect kind", caught at add_unit time) rather than gating Apply itself,
// which already has its own unhandled-kind fallthrough.
var knownKinds = map[Kind]bool{
	KindDamage: true, KindHybridDamage: true, KindDot: true, KindBurn: true,
	KindExecute: true, KindPercentHPDamage: true, KindSplashDamage: true,
	KindRicochet: true, KindMultiHit: true, KindDashThrough: true,
	KindSunder: true, KindShred: true, KindWound: true,
	KindStun: true, KindSlow: true, KindChill: true, KindSilence: true,
	KindDisarm: true, KindKnockback: true, KindPull: true, KindTaunt: true,
	KindHeal: true, KindHealOverTime: true, KindShield: true, KindBuff: true,
	KindBuffTeam: true, KindDecayingBuff: true, KindStackingBuff: true,
	KindManaGrant: true, KindManaReave: true, KindCleanse: true,
	KindDash: true, KindEffectGroup: true, KindCreateZone: true,
	KindIntervalTrigger: true, KindPermanentStack: true, KindReplaceAttacks: true,
	KindTransform: true,
}

// IsKnownKind reports whether k dispatches to a real case in Apply.
func IsKnownKind(k Kind) bool { return knownKinds[k] }

// Effect is the tagged-union descriptor. Amount/Percent/DurationTicks
// etc. are generic slots reused across kinds.
type Effect struct {
	Kind Kind

	Amount        float64 // flat value, scaled by StatRatio before use
	Percent       float64
	Flat          float64
	DurationTicks int
	IntervalTicks int
	Radius        int
	HalfAngle     float64
	Width         int
	MaxTargets    int
	StatKey       unit.StatKey
	DamageType    damage.DamageType
	StackPolicy   unit.StackPolicy
	GroupKey      string // for stacking_buff / permanent_stack counters
	StatRatioOf   unit.StatKey // which caster stat this effect scales off; only matters when ScalePerPoint is non-zero (the zero value is unit.MaxHP)
	ScalePerPoint float64      // Amount contribution per 100 points of StatRatioOf

	Children []*Effect // effect_group's sub-effects, applied in order
}

// Ref wraps an Effect to satisfy simctx.EffectRef without the struct
// field named Kind colliding with a same-named method on Effect itself.
type Ref struct{ *Effect }

func (r Ref) Kind() string { return string(r.Effect.Kind) }

func (e *Effect) AsRef() simctx.EffectRef { return Ref{e} }

// FromRef downcasts a simctx.EffectRef produced by AsRef back to its
// concrete Effect, for engine code that owns the zone/interval bookkeeping.
func FromRef(ref simctx.EffectRef) *Effect {
	if r, ok := ref.(Ref); ok {
		return r.Effect
	}
	return nil
}

// scaledAmount applies spec.md §4.8's stat_ratio scaling:
// effective = Amount + caster_stat/100 * ScalePerPoint.
func (e *Effect) scaledAmount(caster *unit.Unit) float64 {
	v := e.Amount
	if e.StatRatioOf != 0 || e.ScalePerPoint != 0 {
		v += (caster.Stats.Effective(e.StatRatioOf) / 100) * e.ScalePerPoint
	}
	return v
}

// Registry applies effect descriptors against a running simulation.
type Registry struct{}

func NewRegistry() *Registry { return &Registry{} }

// Apply dispatches one effect against one target, returning the outcome.
// star scales Amount-bearing kinds per spec.md §4.8 star multiplier,
// already baked into caster.Stats by the time this runs, so star is only
// needed for flat constants not derived from a stat (rare; most designs
// scale flat amounts via Star directly on the ability's Effect list at
// load time instead).
func (reg *Registry) Apply(sim simctx.Sim, caster, target *unit.Unit, e *Effect, star int) simctx.EffectOutcome {
	switch e.Kind {
	case KindDamage, KindHybridDamage:
		return reg.applyDamage(sim, caster, target, e)
	case KindBurn:
		target.Debuffs.ApplyBurn(e.scaledAmount(caster), e.DurationTicks)
		return simctx.EffectOutcome{Success: true, Value: e.scaledAmount(caster)}
	case KindDot:
		tick := &Effect{Kind: KindDamage, Amount: e.scaledAmount(caster), DamageType: e.DamageType}
		sim.ScheduleInterval(tick.AsRef(), target.ID, e.IntervalTicks, e.DurationTicks, star, caster.ID)
		return simctx.EffectOutcome{Success: true}
	case KindExecute:
		return reg.applyExecute(sim, caster, target, e)
	case KindPercentHPDamage:
		return reg.applyPercentHPDamage(sim, caster, target, e)
	case KindSplashDamage:
		return reg.applySplash(sim, caster, target, e)
	case KindRicochet:
		return reg.applyRicochet(sim, caster, target, e)
	case KindMultiHit:
		return reg.applyMultiHit(sim, caster, target, e)
	case KindDashThrough:
		return reg.applyDamage(sim, caster, target, e)

	case KindSunder:
		target.Debuffs.ApplyArmorShred(e.Percent, e.Flat, e.DurationTicks)
		return simctx.EffectOutcome{Success: true}
	case KindShred:
		target.Debuffs.ApplyMRShred(e.Percent, e.Flat, e.DurationTicks)
		return simctx.EffectOutcome{Success: true}
	case KindWound:
		target.Debuffs.ApplyWound(e.Percent, e.DurationTicks)
		return simctx.EffectOutcome{Success: true}

	case KindStun:
		target.Debuffs.ApplyStun(e.DurationTicks)
		return simctx.EffectOutcome{Success: true}
	case KindSlow, KindChill:
		target.Debuffs.ApplySlow(e.Percent, e.DurationTicks)
		return simctx.EffectOutcome{Success: true}
	case KindSilence:
		target.Debuffs.ApplySilence(e.DurationTicks)
		return simctx.EffectOutcome{Success: true}
	case KindDisarm:
		target.Debuffs.ApplyDisarm(e.DurationTicks)
		return simctx.EffectOutcome{Success: true}
	case KindKnockback:
		return reg.applyKnockback(sim, caster, target, e)
	case KindPull:
		return reg.applyPull(sim, caster, target, e)
	case KindTaunt:
		target.Debuffs.ApplyTaunt(caster.ID, e.DurationTicks)
		return simctx.EffectOutcome{Success: true}

	case KindHeal:
		applied := target.Heal(e.scaledAmount(caster))
		return simctx.EffectOutcome{Success: true, Value: applied}
	case KindHealOverTime:
		tick := &Effect{Kind: KindHeal, Amount: e.scaledAmount(caster), StatRatioOf: 0}
		sim.ScheduleInterval(tick.AsRef(), target.ID, e.IntervalTicks, e.DurationTicks, star, caster.ID)
		return simctx.EffectOutcome{Success: true}
	case KindShield:
		target.Shield.Add(effectID(e, caster), e.scaledAmount(caster), e.DurationTicks)
		return simctx.EffectOutcome{Success: true}
	case KindBuff, KindBuffTeam, KindDecayingBuff:
		target.Buffs().Apply(target.Stats, &unit.Buff{
			ID:            effectID(e, caster),
			Flat:          map[unit.StatKey]float64{e.StatKey: e.Flat},
			Percent:       map[unit.StatKey]float64{e.StatKey: e.Percent},
			RemainingTick: e.DurationTicks,
			Policy:        e.StackPolicy,
			DecayToZero:   e.Kind == KindDecayingBuff,
		})
		return simctx.EffectOutcome{Success: true}
	case KindStackingBuff:
		target.StackCounters[e.GroupKey]++
		target.Buffs().Apply(target.Stats, &unit.Buff{
			ID:            e.GroupKey,
			Flat:          map[unit.StatKey]float64{e.StatKey: e.Flat * float64(target.StackCounters[e.GroupKey])},
			Percent:       map[unit.StatKey]float64{e.StatKey: e.Percent * float64(target.StackCounters[e.GroupKey])},
			RemainingTick: e.DurationTicks,
			Policy:        unit.StackRefresh,
		})
		return simctx.EffectOutcome{Success: true}
	case KindManaGrant:
		target.GrantMana(e.Amount)
		return simctx.EffectOutcome{Success: true}
	case KindManaReave:
		target.Mana -= e.Amount
		if target.Mana < 0 {
			target.Mana = 0
		}
		return simctx.EffectOutcome{Success: true}
	case KindCleanse:
		target.Debuffs.Cleanse()
		return simctx.EffectOutcome{Success: true}

	case KindDash:
		return reg.applyDash(sim, caster, target, e)
	case KindEffectGroup:
		for _, child := range e.Children {
			reg.Apply(sim, caster, target, child, star)
		}
		return simctx.EffectOutcome{Success: true}
	case KindCreateZone:
		sim.CreateZone(target.Pos, simctx.AoESpec{Shape: "circle", Radius: e.Radius, Affinity: "enemies", CasterTeam: int(caster.Team)}, e.Children[0].AsRef(), e.IntervalTicks, e.DurationTicks, star, caster.ID)
		return simctx.EffectOutcome{Success: true}
	case KindIntervalTrigger:
		sim.ScheduleInterval(e.Children[0].AsRef(), target.ID, e.IntervalTicks, e.DurationTicks, star, caster.ID)
		return simctx.EffectOutcome{Success: true}
	case KindPermanentStack:
		target.StackCounters[e.GroupKey]++
		target.Stats.AddFlat(e.StatKey, "permstack:"+e.GroupKey, e.Flat*float64(target.StackCounters[e.GroupKey]))
		target.Stats.AddPercent(e.StatKey, "permstack-pct:"+e.GroupKey, e.Percent*float64(target.StackCounters[e.GroupKey]))
		return simctx.EffectOutcome{Success: true}
	case KindReplaceAttacks:
		refs := make([]unit.EffectRef, len(e.Children))
		for i, child := range e.Children {
			refs[i] = child.AsRef()
		}
		n := e.MaxTargets
		if n <= 0 {
			n = 1
		}
		caster.SetReplacedAttacks(refs, n)
		return simctx.EffectOutcome{Success: true}
	case KindTransform:
		target.AbilityID = e.GroupKey
		return simctx.EffectOutcome{Success: true}
	}
	return simctx.EffectOutcome{Success: false, Notes: fmt.Sprintf("unhandled effect kind %q", e.Kind)}
}

func effectID(e *Effect, caster *unit.Unit) string {
	if e.GroupKey != "" {
		return e.GroupKey
	}
	return string(e.Kind) + ":" + string(caster.ID)
}

func (reg *Registry) applyDamage(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	res := damage.Resolve(sim.RNG(), damage.Request{
		Caster:     caster,
		Target:     target,
		Amount:     e.scaledAmount(caster),
		Type:       e.DamageType,
		Amps:       sim.AmplifiersFor(caster),
		CanCrit:    true,
		CritChance: -1,
		CritDamage: -1,
	})
	if !res.Dodged {
		sim.GrantDamageMana(target, res.RawAmount, res.Mitigated)
	}
	if res.HPDamage > 0 {
		damage.ApplyLifesteal(caster, e.DamageType, res.HPDamage)
	}
	sim.Log(event.Event{Kind: event.KindDamage, Source: string(caster.ID), Target: string(target.ID), Value: res.Mitigated, Crit: res.Crit, Dodged: res.Dodged})
	if res.Killed {
		sim.Log(event.Event{Kind: event.KindDeath, Target: string(target.ID)})
	}
	return simctx.EffectOutcome{Success: !res.Dodged, Value: res.Mitigated}
}

func (reg *Registry) applyExecute(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	maxHP := target.Stats.Effective(unit.MaxHP)
	if maxHP > 0 && target.HP/maxHP <= e.Percent {
		target.ApplyDamageToPools(target.HP)
		return simctx.EffectOutcome{Success: true, Value: target.HP}
	}
	return reg.applyDamage(sim, caster, target, e)
}

func (reg *Registry) applyPercentHPDamage(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	maxHP := target.Stats.Effective(unit.MaxHP)
	amount := maxHP * e.Percent
	res := damage.Resolve(sim.RNG(), damage.Request{Caster: caster, Target: target, Amount: amount, Type: e.DamageType, Amps: sim.AmplifiersFor(caster), CanCrit: false, IgnoresDodge: false})
	if !res.Dodged {
		sim.GrantDamageMana(target, res.RawAmount, res.Mitigated)
	}
	return simctx.EffectOutcome{Success: !res.Dodged, Value: res.Mitigated}
}

func (reg *Registry) applySplash(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	hexes := target.Pos.Circle(e.Radius)
	inBlast := make(map[hexcoord.Coord]bool, len(hexes))
	for _, h := range hexes {
		inBlast[h] = true
	}
	var lastOutcome simctx.EffectOutcome
	for _, other := range sim.LiveEnemiesOf(int(caster.Team)) {
		if inBlast[other.Pos] {
			lastOutcome = reg.applyDamage(sim, caster, other, e)
		}
	}
	return lastOutcome
}

func (reg *Registry) applyRicochet(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	current := target
	hit := map[unit.ID]bool{}
	var last simctx.EffectOutcome
	for i := 0; i < e.MaxTargets; i++ {
		last = reg.applyDamage(sim, caster, current, e)
		hit[current.ID] = true
		next := nearestUnhit(sim, caster, current, hit)
		if next == nil {
			break
		}
		current = next
	}
	return last
}

// nearestUnhit picks the closest not-yet-hit enemy to bounce a ricochet
// to. Ties are broken by an RNG fork rather than candidate order, so the
// outcome doesn't silently depend on LiveEnemiesOf's iteration order; the
// fork happens only when a tie is actually present (a fact determined by
// deterministic hex distances, never by a prior roll's outcome), so it
// still forks at a fixed point per rng.Stream.Fork's contract.
func nearestUnhit(sim simctx.Sim, caster, from *unit.Unit, hit map[unit.ID]bool) *unit.Unit {
	var candidates []*unit.Unit
	bestDist := 1 << 30
	for _, u := range sim.LiveEnemiesOf(int(caster.Team)) {
		if hit[u.ID] {
			continue
		}
		d := from.Pos.Distance(u.Pos)
		switch {
		case d < bestDist:
			bestDist = d
			candidates = []*unit.Unit{u}
		case d == bestDist:
			candidates = append(candidates, u)
		}
	}
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	default:
		fork := sim.RNG().Fork("ricochet-tiebreak:" + string(caster.ID) + ":" + string(from.ID))
		return candidates[fork.ChoiceIndex(len(candidates))]
	}
}

func (reg *Registry) applyMultiHit(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	var last simctx.EffectOutcome
	n := e.MaxTargets
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		last = reg.applyDamage(sim, caster, target, e)
		if !target.IsAlive() {
			break
		}
	}
	return last
}

// applyKnockback per DESIGN.md's Open Question resolution: if the next
// hex along the push is occupied or off the grid, the pushed target stops
// short and suffers a 1-tick collision stun; no bonus damage is dealt.
func (reg *Registry) applyKnockback(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	dir := directionAway(caster.Pos, target.Pos)
	dest := target.Pos
	grid := sim.Grid()
	for i := 0; i < e.Radius; i++ {
		next := dest.Add(dir)
		if !grid.InBounds(next) || !grid.IsWalkable(next) {
			target.Debuffs.ApplyStun(1)
			break
		}
		dest = next
	}
	grid.Move(toGridID(target.ID), dest)
	target.Pos = dest
	return simctx.EffectOutcome{Success: true}
}

func (reg *Registry) applyPull(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	dir := directionAway(target.Pos, caster.Pos)
	dest := target.Pos
	grid := sim.Grid()
	for i := 0; i < e.Radius; i++ {
		next := dest.Add(dir)
		if !grid.InBounds(next) || !grid.IsWalkable(next) || next.Distance(caster.Pos) == 0 {
			break
		}
		dest = next
	}
	grid.Move(toGridID(target.ID), dest)
	target.Pos = dest
	return simctx.EffectOutcome{Success: true}
}

func (reg *Registry) applyDash(sim simctx.Sim, caster, target *unit.Unit, e *Effect) simctx.EffectOutcome {
	dir := directionAway(target.Pos, caster.Pos)
	grid := sim.Grid()
	dest := caster.Pos
	for i := 0; i < e.Radius; i++ {
		next := dest.Add(dir)
		if !grid.InBounds(next) || !grid.IsWalkable(next) {
			break
		}
		dest = next
	}
	grid.Move(toGridID(caster.ID), dest)
	caster.Pos = dest
	return simctx.EffectOutcome{Success: true}
}

// directionAway returns the one of the 6 hex directions, rooted at away,
// that most increases distance from origin — used to push a unit
// directly away from (or, with swapped arguments, toward) another.
func directionAway(origin, away hexcoord.Coord) hexcoord.Coord {
	var bestDir hexcoord.Coord
	bestScore := -1
	for i := 0; i < 6; i++ {
		dir := hexcoord.Coord{}.Neighbor(i)
		candidate := away.Add(dir)
		score := candidate.Distance(origin)
		if score > bestScore {
			bestScore = score
			bestDir = dir
		}
	}
	return bestDir
}

func toGridID(id unit.ID) hexgrid.UnitID { return hexgrid.UnitID(id) }
