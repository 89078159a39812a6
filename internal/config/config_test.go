package config

import (
	"testing"

	"gopkg.in/yaml.v3"

	"hexbattle/internal/ability"
	"hexbattle/internal/damage"
	"hexbattle/internal/effects"
	"hexbattle/internal/targeting"
	"hexbattle/internal/unit"
)

func TestUnitsConfigUnmarshal(t *testing.T) {
	raw := `
units:
  - id: u1
    name: Vanguard
    ability_id: a1
    max_hp: 1200
    ad: 60
    armor: 20
    attack_range: 1
    traits: [warrior]
`
	var cfg UnitsConfig
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(cfg.Units) != 1 {
		t.Fatalf("got %d units, want 1", len(cfg.Units))
	}
	u := cfg.Units[0]
	if u.ID != "u1" || u.MaxHP != 1200 || u.AD != 60 || u.Armor != 20 {
		t.Fatalf("unexpected unit def: %+v", u)
	}
	if len(u.Traits) != 1 || u.Traits[0] != "warrior" {
		t.Fatalf("unexpected traits: %v", u.Traits)
	}
}

func TestUnitDefBaseStats(t *testing.T) {
	d := UnitDef{MaxHP: 900, AD: 45, Armor: 10, AttackRange: 2}
	stats := d.BaseStats()
	if stats[unit.MaxHP] != 900 {
		t.Fatalf("max_hp not carried through: %v", stats)
	}
	if stats[unit.AttackRange] != 2 {
		t.Fatalf("attack_range not carried through: %v", stats)
	}
}

func TestStatKeyByNameKnownAndUnknown(t *testing.T) {
	if _, ok := StatKeyByName("ad"); !ok {
		t.Fatal("expected ad to resolve")
	}
	if _, ok := StatKeyByName("not_a_real_stat"); ok {
		t.Fatal("expected unknown stat name to miss")
	}
}

func TestBuildEffectFlattensNestedChildren(t *testing.T) {
	d := EffectDef{
		Kind: "effect_group",
		Children: []EffectDef{
			{Kind: "damage", Amount: 40, DamageType: "physical"},
			{Kind: "stun", DurationTicks: 3},
		},
	}
	e := BuildEffect(d)
	if e.Kind != effects.KindEffectGroup {
		t.Fatalf("Kind = %v, want effect_group", e.Kind)
	}
	if len(e.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(e.Children))
	}
	if e.Children[0].DamageType != damage.Physical {
		t.Fatalf("child damage type not resolved: %v", e.Children[0].DamageType)
	}
	if e.Children[1].DurationTicks != 3 {
		t.Fatalf("child duration not carried through: %v", e.Children[1].DurationTicks)
	}
}

func TestBuildAbilityResolvesPolicyAndDelivery(t *testing.T) {
	d := AbilityDef{
		ID:           "fireball",
		TargetPolicy: "lowest_hp_percent",
		Delivery:     "projectile",
		Speed:        3,
		Effects: []EffectDef{
			{Kind: "damage", Amount: 100, DamageType: "magical"},
		},
	}
	def := BuildAbility(d)
	if def.TargetPolicy != targeting.LowestHPPercent {
		t.Fatalf("TargetPolicy = %v, want lowest_hp_percent", def.TargetPolicy)
	}
	if def.Projectile.Speed != 3 {
		t.Fatalf("Projectile.Speed = %v, want 3", def.Projectile.Speed)
	}
	if def.Delivery != ability.DeliveryProjectile {
		t.Fatalf("Delivery = %v, want projectile", def.Delivery)
	}
	if len(def.Effects) != 1 || def.Effects[0].Kind != effects.KindDamage {
		t.Fatalf("unexpected effects: %+v", def.Effects)
	}
}

func TestBundleUnitByID(t *testing.T) {
	b := &Bundle{Units: UnitsConfig{Units: []UnitDef{{ID: "a"}, {ID: "b"}}}}
	if got := b.UnitByID("b"); got == nil || got.ID != "b" {
		t.Fatalf("UnitByID(b) = %+v", got)
	}
	if got := b.UnitByID("missing"); got != nil {
		t.Fatalf("UnitByID(missing) = %+v, want nil", got)
	}
}

func TestBuildAbilityRegistryRegistersEveryAbility(t *testing.T) {
	b := &Bundle{Abilities: AbilitiesConfig{Abilities: []AbilityDef{
		{ID: "a1"}, {ID: "a2"},
	}}}
	reg := b.BuildAbilityRegistry()
	if reg.Get("a1") == nil || reg.Get("a2") == nil {
		t.Fatal("expected both abilities registered")
	}
	if reg.Get("missing") != nil {
		t.Fatal("expected unregistered id to miss")
	}
}
