// Package damage implements the fixed-order damage pipeline (spec.md
// §4.7): crit roll, dodge roll, resistance mitigation (with shred
// applied), outgoing/incoming amplifiers, durability reduction, then
// shield-before-HP application, plus the lifesteal/omnivamp helper.
// Mana-on-damage-taken is not computed here; callers grant it after
// Resolve returns.
// Grounded on the teacher's damage-resolution sequence in its combat
// package (now folded into this one) and original_source's DamageResult
// for the result shape.
package damage

import (
	"hexbattle/internal/rng"
	"hexbattle/internal/unit"
)

// DamageType distinguishes which resistance (if any) mitigates the hit.
type DamageType int

const (
	Physical DamageType = iota
	Magical
	True // ignores resistance entirely; burns use this
)

// Amplifiers holds one damage-amp bucket per source, in the order they
// apply. Per DESIGN.md's Open Question resolution: item amplifiers apply
// before trait amplifiers, which apply before transient-buff amplifiers;
// each bucket holds the compounded amplifier of its own sources and is
// multiplied in its own step rather than all three being pooled into one
// multiplier.
type Amplifiers struct {
	ItemPercent  float64
	TraitPercent float64
	BuffPercent  float64
}

func (a Amplifiers) apply(v float64) float64 {
	v *= 1 + a.ItemPercent
	v *= 1 + a.TraitPercent
	v *= 1 + a.BuffPercent
	return v
}

// Request describes one incoming hit before mitigation.
type Request struct {
	Caster      *unit.Unit
	Target      *unit.Unit
	Amount      float64
	Type        DamageType
	CanCrit     bool
	CritChance  float64 // overrides Caster's stat when >=0; -1 means "use caster stat"
	CritDamage  float64 // overrides Caster's stat when >=0
	Amps        Amplifiers
	IgnoresDodge bool
}

// Result records what actually happened, mirroring original_source's
// DamageResult so downstream event logging and lifesteal/omnivamp have
// everything they need without re-deriving it.
type Result struct {
	RawAmount    float64
	Mitigated    float64
	ShieldAbsorbed float64
	HPDamage     float64
	Crit         bool
	Dodged       bool
	Killed       bool
}

// Resolve runs the full pipeline and mutates target's HP/shield pools.
// RNG rolls happen in a fixed order (crit, then dodge) so replay streams
// stay aligned regardless of which roll ends up mattering.
func Resolve(r *rng.Stream, req Request) Result {
	critRoll := false
	if req.CanCrit {
		chance := req.CritChance
		if chance < 0 {
			chance = req.Caster.Stats.Effective(unit.CritChance)
		}
		critRoll = r.Roll(chance)
	}
	dodgeRoll := false
	if !req.IgnoresDodge {
		dodgeRoll = r.Roll(req.Target.Stats.Effective(unit.DodgeChance))
	}

	amount := req.Amount
	if critRoll {
		critMult := req.CritDamage
		if critMult < 0 {
			critMult = req.Caster.Stats.Effective(unit.CritDamage)
		}
		amount *= critMult
	}

	if dodgeRoll {
		return Result{RawAmount: amount, Dodged: true}
	}

	mitigated := mitigate(req, amount)
	mitigated = req.Amps.apply(mitigated)
	mitigated = applyDurability(req.Target, mitigated)
	if mitigated < 0 {
		mitigated = 0
	}

	hpDamage := req.Target.ApplyDamageToPools(mitigated)
	shieldAbsorbed := mitigated - hpDamage

	return Result{
		RawAmount:      amount,
		Mitigated:      mitigated,
		ShieldAbsorbed: shieldAbsorbed,
		HPDamage:       hpDamage,
		Crit:           critRoll,
		Dodged:         false,
		Killed:         !req.Target.IsAlive(),
	}
}

// applyDurability reduces amount by the target's summed Durability stat,
// capped at 90% (spec.md §4.7 step 6). Runs after amplifiers and applies
// regardless of damage type, since durability is a flat incoming-damage
// reduction rather than a resistance.
func applyDurability(target *unit.Unit, amount float64) float64 {
	d := target.Stats.Effective(unit.Durability)
	if d > 0.9 {
		d = 0.9
	}
	if d <= 0 {
		return amount
	}
	return amount - amount*d
}

// mitigate applies resistance reduction: reduction = resist/(resist+100),
// with any active shred subtracted from resist (percent first, then
// flat) before the ratio is computed (spec.md §4.7 step 4).
func mitigate(req Request, amount float64) float64 {
	if req.Type == True {
		return amount
	}

	var resist float64
	var shredPct, shredFlat float64
	if req.Type == Physical {
		resist = req.Target.Stats.Effective(unit.Armor)
		shredPct, shredFlat = req.Target.Debuffs.ArmorShred()
	} else {
		resist = req.Target.Stats.Effective(unit.MagicResist)
		shredPct, shredFlat = req.Target.Debuffs.MRShred()
	}
	resist = resist*(1-shredPct) - shredFlat
	if resist < 0 {
		resist = 0
	}
	reduction := resist / (resist + 100)
	return amount * (1 - reduction)
}

// ApplyLifesteal grants the caster HP equal to omnivamp/lifesteal
// percentage of the HP damage actually dealt (never shield absorption,
// never overkill past target's remaining HP — spec.md §4.7 step 8).
func ApplyLifesteal(caster *unit.Unit, dmgType DamageType, hpDamage float64) (healed float64) {
	if hpDamage <= 0 {
		return 0
	}
	pct := caster.Stats.Effective(unit.Omnivamp)
	if dmgType == Physical {
		pct += caster.Stats.Effective(unit.Lifesteal)
	}
	if pct <= 0 {
		return 0
	}
	return caster.Heal(hpDamage * pct)
}
