package config

import (
	"hexbattle/internal/ability"
	"hexbattle/internal/damage"
	"hexbattle/internal/effects"
	"hexbattle/internal/simctx"
	"hexbattle/internal/targeting"
	"hexbattle/internal/unit"
)

var statKeyByName = map[string]unit.StatKey{
	"max_hp":              unit.MaxHP,
	"ad":                  unit.AD,
	"ap":                  unit.AP,
	"armor":               unit.Armor,
	"magic_resist":        unit.MagicResist,
	"attack_speed":        unit.AttackSpeed,
	"crit_chance":         unit.CritChance,
	"crit_damage":         unit.CritDamage,
	"dodge_chance":        unit.DodgeChance,
	"ability_crit_chance": unit.AbilityCritChance,
	"attack_range":        unit.AttackRange,
	"movement_speed":      unit.MovementSpeed,
	"lifesteal":           unit.Lifesteal,
	"omnivamp":            unit.Omnivamp,
	"mana_regen":          unit.ManaRegen,
	"durability":          unit.Durability,
}

// BaseStats converts a UnitDef's named fields into the map
// unit.NewUnit expects.
func (d UnitDef) BaseStats() map[unit.StatKey]float64 {
	return map[unit.StatKey]float64{
		unit.MaxHP:       d.MaxHP,
		unit.AD:          d.AD,
		unit.AP:          d.AP,
		unit.Armor:       d.Armor,
		unit.MagicResist: d.MagicResist,
		unit.AttackSpeed: d.AttackSpeed,
		unit.CritChance:  d.CritChance,
		unit.CritDamage:  d.CritDamage,
		unit.DodgeChance: d.DodgeChance,
		unit.AttackRange: float64(d.AttackRange),
	}
}

// StatKeyByName resolves a YAML stat name to its unit.StatKey, for
// callers applying item/trait bonuses outside the build pipeline.
func StatKeyByName(name string) (unit.StatKey, bool) {
	k, ok := statKeyByName[name]
	return k, ok
}

var stackPolicyByName = map[string]unit.StackPolicy{
	"none":      unit.StackNone,
	"refresh":   unit.StackRefresh,
	"intensify": unit.StackIntensify,
	"multi":     unit.StackMulti,
}

var damageTypeByName = map[string]damage.DamageType{
	"physical": damage.Physical,
	"magical":  damage.Magical,
	"true":     damage.True,
}

var policyByName = map[string]targeting.Policy{
	"nearest":           targeting.Nearest,
	"farthest":          targeting.Farthest,
	"lowest_hp_percent": targeting.LowestHPPercent,
	"lowest_hp_flat":    targeting.LowestHPFlat,
	"highest_stat":      targeting.HighestStat,
	"cluster":           targeting.Cluster,
	"random":            targeting.Random,
	"frontline":         targeting.Frontline,
	"backline":          targeting.Backline,
	"current_target":    targeting.CurrentTarget,
}

// BuildEffect converts one EffectDef tree into an *effects.Effect tree.
func BuildEffect(d EffectDef) *effects.Effect {
	e := &effects.Effect{
		Kind:          effects.Kind(d.Kind),
		Amount:        d.Amount,
		Percent:       d.Percent,
		Flat:          d.Flat,
		DurationTicks: d.DurationTicks,
		IntervalTicks: d.IntervalTicks,
		Radius:        d.Radius,
		HalfAngle:     d.HalfAngle,
		Width:         d.Width,
		MaxTargets:    d.MaxTargets,
		StatKey:       statKeyByName[d.StatKey],
		DamageType:    damageTypeByName[d.DamageType],
		StackPolicy:   stackPolicyByName[d.StackPolicy],
		GroupKey:      d.GroupKey,
		StatRatioOf:   statKeyByName[d.StatRatioOf],
		ScalePerPoint: d.ScalePerPoint,
	}
	for _, c := range d.Children {
		e.Children = append(e.Children, BuildEffect(c))
	}
	return e
}

// BuildAbility converts an AbilityDef into an *ability.Definition.
func BuildAbility(d AbilityDef) *ability.Definition {
	def := &ability.Definition{
		ID:               d.ID,
		ManaCost:         d.ManaCost,
		CastStartTicks:   d.CastStartTicks,
		EffectPointTicks: d.EffectPointTicks,
		CastEndTicks:     d.CastEndTicks,
		TargetPolicy:     policyByName[d.TargetPolicy],
		TargetRange:      d.TargetRange,
		TargetStat:       statKeyByName[d.TargetStat],
		Delivery:         ability.Delivery(d.Delivery),
		AoE: simctx.AoESpec{
			Shape:     d.AoE.Shape,
			Radius:    d.AoE.Radius,
			HalfAngle: d.AoE.HalfAngle,
			Width:     d.AoE.Width,
			Affinity:  d.AoE.Affinity,
		},
		Projectile: simctx.ProjectileSpec{
			Homing:  d.Homing,
			CanMiss: d.CanMiss,
			Speed:   d.Speed,
		},
		ProjectileCount:     d.ProjectileCount,
		SwarmSpreadAngleDeg: d.SwarmSpreadAngleDeg,
		SwarmJitterDeg:      d.SwarmJitterDeg,
	}
	for _, e := range d.Effects {
		def.Effects = append(def.Effects, BuildEffect(e))
	}
	return def
}

// BuildAbilityRegistry converts every AbilityDef in the bundle.
func (b *Bundle) BuildAbilityRegistry() *ability.Registry {
	reg := ability.NewRegistry()
	for _, d := range b.Abilities.Abilities {
		reg.Register(BuildAbility(d))
	}
	return reg
}

// UnitByID finds a unit definition, or nil.
func (b *Bundle) UnitByID(id string) *UnitDef {
	for i := range b.Units.Units {
		if b.Units.Units[i].ID == id {
			return &b.Units.Units[i]
		}
	}
	return nil
}
