package damage

import (
	"testing"

	"hexbattle/internal/hexcoord"
	"hexbattle/internal/rng"
	"hexbattle/internal/unit"
)

func newTestUnit(id unit.ID, armor, mr float64) *unit.Unit {
	return unit.NewUnit(id, unit.TeamA, map[unit.StatKey]float64{
		unit.MaxHP:       1000,
		unit.Armor:       armor,
		unit.MagicResist: mr,
		unit.CritChance:  0,
		unit.CritDamage:  1.5,
		unit.DodgeChance: 0,
	}, 100, hexcoord.Coord{})
}

func TestArmorMitigation(t *testing.T) {
	caster := newTestUnit("c", 0, 0)
	target := newTestUnit("t", 100, 0) // resist=100 -> reduction=0.5
	r := rng.New(1)
	res := Resolve(r, Request{Caster: caster, Target: target, Amount: 100, Type: Physical, CanCrit: false})
	if res.Mitigated != 50 {
		t.Fatalf("mitigated = %v, want 50", res.Mitigated)
	}
}

func TestTrueDamageIgnoresResist(t *testing.T) {
	caster := newTestUnit("c", 0, 0)
	target := newTestUnit("t", 999, 999)
	r := rng.New(1)
	res := Resolve(r, Request{Caster: caster, Target: target, Amount: 40, Type: True})
	if res.Mitigated != 40 {
		t.Fatalf("true damage mitigated = %v, want 40", res.Mitigated)
	}
}

func TestDurabilityReducesMitigatedDamage(t *testing.T) {
	caster := newTestUnit("c", 0, 0)
	target := newTestUnit("t", 0, 0)
	target.Stats.SetBase(unit.Durability, 0.2)
	r := rng.New(1)
	res := Resolve(r, Request{Caster: caster, Target: target, Amount: 100, Type: True, CanCrit: false})
	if res.Mitigated != 80 {
		t.Fatalf("mitigated = %v, want 80 (100 * (1 - 0.2) durability reduction)", res.Mitigated)
	}
}

func TestDurabilityCapsAtNinetyPercent(t *testing.T) {
	caster := newTestUnit("c", 0, 0)
	target := newTestUnit("t", 0, 0)
	target.Stats.SetBase(unit.Durability, 5) // absurd stack, must clamp to 0.9
	r := rng.New(1)
	res := Resolve(r, Request{Caster: caster, Target: target, Amount: 100, Type: True, CanCrit: false})
	if res.Mitigated != 10 {
		t.Fatalf("mitigated = %v, want 10 (capped at 90%% reduction)", res.Mitigated)
	}
}

func TestDodgeShortCircuitsMitigation(t *testing.T) {
	caster := newTestUnit("c", 0, 0)
	target := newTestUnit("t", 0, 0)
	target.Stats.SetBase(unit.DodgeChance, 1.0)
	r := rng.New(1)
	res := Resolve(r, Request{Caster: caster, Target: target, Amount: 100, Type: Physical})
	if !res.Dodged || res.HPDamage != 0 {
		t.Fatalf("expected full dodge, got %+v", res)
	}
}
