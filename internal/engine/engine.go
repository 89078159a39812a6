// Package engine ties every other package into a runnable simulation:
// the fixed-rate tick scheduler, the six-phase per-tick loop, and the
// simctx.Sim implementation effects/ability/projectile code calls back
// into. Grounded on the teacher's internal/combat.Env/RunSingle loop
// structure, generalized from its single-boss-vs-party fixed script to
// spec.md's two-team hex-grid simulation.
package engine

import (
	"fmt"

	"hexbattle/internal/ability"
	"hexbattle/internal/damage"
	"hexbattle/internal/effects"
	"hexbattle/internal/event"
	"hexbattle/internal/hexgrid"
	"hexbattle/internal/projectile"
	"hexbattle/internal/rng"
	"hexbattle/internal/simctx"
	"hexbattle/internal/unit"
)

// Simulation is one deterministic battle: a seeded RNG, a roster, a
// grid, and the ability/effect/projectile machinery acting on them.
type Simulation struct {
	RunID string
	Seed  int64

	rng  *rng.Stream
	grid *hexgrid.Grid

	units []*unit.Unit
	byID  map[unit.ID]*unit.Unit

	abilities *ability.Registry
	effects   *effects.Registry
	proj      *projectile.Manager

	amps map[unit.ID]damage.Amplifiers

	log      *event.Log
	tick     int
	maxTicks int

	zones     []*zone
	intervals []*intervalJob

	manaOnDamagePre  float64
	manaOnDamagePost float64
	manaOnDamageCap  float64

	ended  bool
	winner int // -1 draw/timeout, 0 or 1
}

// NewSimulation builds an empty simulation against the given seed,
// ability registry, and event sink. Units are added with AddUnit.
func NewSimulation(runID string, seed int64, abilities *ability.Registry, log *event.Log, maxTicks int) *Simulation {
	return &Simulation{
		RunID:     runID,
		Seed:      seed,
		rng:       rng.New(seed),
		grid:      hexgrid.New(),
		byID:      map[unit.ID]*unit.Unit{},
		abilities: abilities,
		effects:   effects.NewRegistry(),
		proj:      projectile.NewManager(),
		amps:      map[unit.ID]damage.Amplifiers{},
		log:       log,
		maxTicks:  maxTicks,
		winner:    -1,
		// spec.md §4.6 defaults; SetManaOnDamageParams overrides from
		// config.Defaults when the caller loads one.
		manaOnDamagePre:  0.01,
		manaOnDamagePost: 0.03,
		manaOnDamageCap:  42.5,
	}
}

// SetManaOnDamageParams overrides the mana-on-damage-taken formula
// constants (spec.md §4.6); NewSimulation's defaults apply until this is
// called.
func (s *Simulation) SetManaOnDamageParams(pre, post, cap float64) {
	s.manaOnDamagePre, s.manaOnDamagePost, s.manaOnDamageCap = pre, post, cap
}

// AddUnit validates and registers a unit, placing it on the grid. Units
// must be added before Run starts; mid-battle spawns are a Non-goal.
// Returns a *ConfigError for any of spec.md §7.1's configuration-error
// conditions — duplicate/empty id, non-positive max_hp, a hex already
// occupied, unknown ability id, or an ability referencing an unknown
// effect kind — rather than
// panicking or silently accepting bad data.
func (s *Simulation) AddUnit(u *unit.Unit) error {
	if u == nil {
		return &ConfigError{Err: fmt.Errorf("add_unit: nil unit")}
	}
	if u.ID == "" {
		return &ConfigError{Err: fmt.Errorf("add_unit: unit id must not be empty")}
	}
	if _, exists := s.byID[u.ID]; exists {
		return &ConfigError{Err: fmt.Errorf("add_unit: duplicate unit id %q", u.ID)}
	}
	if u.Stats.Effective(unit.MaxHP) <= 0 {
		return &ConfigError{Err: fmt.Errorf("add_unit %q: max_hp must be positive, got %v", u.ID, u.Stats.Effective(unit.MaxHP))}
	}
	if u.AbilityID != "" {
		def := s.abilities.Get(u.AbilityID)
		if def == nil {
			return &ConfigError{Err: fmt.Errorf("add_unit %q: unknown ability id %q", u.ID, u.AbilityID)}
		}
		if err := validateEffects(def.Effects); err != nil {
			return &ConfigError{Err: fmt.Errorf("add_unit %q: ability %q: %w", u.ID, u.AbilityID, err)}
		}
	}
	if occ, occupied := s.grid.Occupant(u.Pos); occupied {
		return &ConfigError{Err: fmt.Errorf("add_unit %q: hex (%d,%d) already occupied by %q", u.ID, u.Pos.Q, u.Pos.R, occ)}
	}

	s.units = append(s.units, u)
	s.byID[u.ID] = u
	s.grid.Place(hexgrid.UnitID(u.ID), u.Pos)
	return nil
}

// validateEffects walks an effect tree (including effect_group children)
// checking every kind against the registry's known set, catching a typo'd
// or unimplemented kind at add_unit time instead of failing silently mid-
// battle via Apply's default case.
func validateEffects(effs []*effects.Effect) error {
	for _, e := range effs {
		if !effects.IsKnownKind(e.Kind) {
			return fmt.Errorf("unknown effect kind %q", e.Kind)
		}
		if err := validateEffects(e.Children); err != nil {
			return err
		}
	}
	return nil
}

// EquipItem validates the unit exists, then records an item's damage-
// amplifier contribution for it; the stat flat/percent portion is applied
// directly to the unit's StatBlock by the caller at roster-build time
// (items are permanent modifiers, not timed buffs, so they bypass the
// buff list entirely).
func (s *Simulation) EquipItem(id unit.ID, itemAmpPercent float64) error {
	if _, exists := s.byID[id]; !exists {
		return &ConfigError{Err: fmt.Errorf("equip_item: unknown unit id %q", id)}
	}
	a := s.amps[id]
	a.ItemPercent = (1+a.ItemPercent)*(1+itemAmpPercent) - 1
	s.amps[id] = a
	return nil
}

// AttachTraitAmplifier records a trait-breakpoint damage amplifier for a
// unit, mirroring EquipItem but in the trait bucket (SPEC_FULL.md's Open
// Question resolution on amplifier-bucket ordering: item, then trait,
// then transient buff).
func (s *Simulation) AttachTraitAmplifier(id unit.ID, traitAmpPercent float64) {
	a := s.amps[id]
	a.TraitPercent = (1+a.TraitPercent)*(1+traitAmpPercent) - 1
	s.amps[id] = a
}

// amplifiersFor returns the item+trait damage-amp buckets recorded for
// id. Transient-buff amplifiers (the third bucket in SPEC_FULL.md's Open
// Question resolution) are tracked per-unit via a dedicated stacking
// counter keyed "dmgamp_pct_x100" (whole percentage points), since a damage amplifier is not itself a stat
// and so has no StatKey of its own.
func (s *Simulation) amplifiersFor(id unit.ID, caster *unit.Unit) damage.Amplifiers {
	a := s.amps[id]
	if n, ok := caster.StackCounters["dmgamp_pct_x100"]; ok {
		a.BuffPercent += float64(n) / 100
	}
	return a
}

// --- simctx.Sim implementation ---

func (s *Simulation) Tick() int          { return s.tick }
func (s *Simulation) Grid() *hexgrid.Grid { return s.grid }
func (s *Simulation) RNG() *rng.Stream    { return s.rng }
func (s *Simulation) Log(ev event.Event) {
	ev.Tick = s.tick
	if s.log != nil {
		_ = s.log.Append(ev)
	}
}

func (s *Simulation) FindUnit(id unit.ID) *unit.Unit { return s.byID[id] }

func (s *Simulation) LiveUnits() []*unit.Unit {
	out := make([]*unit.Unit, 0, len(s.units))
	for _, u := range s.units {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

func (s *Simulation) LiveEnemiesOf(team int) []*unit.Unit {
	out := make([]*unit.Unit, 0, len(s.units)/2)
	for _, u := range s.units {
		if u.IsAlive() && int(u.Team) != team {
			out = append(out, u)
		}
	}
	return out
}

func (s *Simulation) LiveAlliesOf(team int, excluding unit.ID) []*unit.Unit {
	out := make([]*unit.Unit, 0, len(s.units)/2)
	for _, u := range s.units {
		if u.IsAlive() && int(u.Team) == team && u.ID != excluding {
			out = append(out, u)
		}
	}
	return out
}

func (s *Simulation) SpawnProjectile(spec simctx.ProjectileSpec) {
	target := s.byID[spec.TargetID]
	dest := spec.StartHex
	if target != nil {
		dest = target.Pos
	}
	s.proj.Spawn(spec, dest)
	s.Log(event.Event{Kind: event.KindProjectile, Source: string(spec.SourceID), Target: string(spec.TargetID)})
}

func (s *Simulation) ApplyEffectRef(caster, target *unit.Unit, ref simctx.EffectRef, star int) simctx.EffectOutcome {
	e := effects.FromRef(ref)
	if e == nil {
		return simctx.EffectOutcome{}
	}
	return s.effects.Apply(s, caster, target, e, star)
}

// AmplifiersFor is amplifiersFor's exported form, reachable through
// simctx.Sim so every damage-producing effect (not just basic attacks,
// which call amplifiersFor directly from tick.go) applies the same
// item/trait/buff amplifier buckets (spec.md §4.7 step 5).
func (s *Simulation) AmplifiersFor(caster *unit.Unit) damage.Amplifiers {
	return s.amplifiersFor(caster.ID, caster)
}

// GrantDamageMana implements spec.md §4.6's "on damage taken" mana gain:
// min(cap, raw*pre_pct + mitigated*post_pct), suppressed entirely while
// the target is mid-cast (the mana lock). raw and mitigated come straight
// from the damage.Result the caller already has, before shield
// absorption — per the worked example in spec.md §8, mitigated here means
// the post-mitigation amount applied to the target's pools, not the
// post-shield HP damage.
func (s *Simulation) GrantDamageMana(target *unit.Unit, raw, mitigated float64) {
	if target.State() == unit.StateCasting {
		return
	}
	gain := raw*s.manaOnDamagePre + mitigated*s.manaOnDamagePost
	if gain > s.manaOnDamageCap {
		gain = s.manaOnDamageCap
	}
	if gain > 0 {
		target.GrantMana(gain)
	}
}
