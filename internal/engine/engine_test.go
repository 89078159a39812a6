package engine

import (
	"bytes"
	"testing"

	"hexbattle/internal/ability"
	"hexbattle/internal/damage"
	"hexbattle/internal/effects"
	"hexbattle/internal/event"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/simctx"
	"hexbattle/internal/unit"
)

func brawlerRegistry() *ability.Registry {
	reg := ability.NewRegistry()
	reg.Register(&ability.Definition{
		ID:               "smash",
		CastStartTicks:   2,
		EffectPointTicks: 1,
		CastEndTicks:     2,
		TargetPolicy:     "nearest",
		TargetRange:      6,
		Delivery:         ability.DeliveryInstant,
		Effects: []*effects.Effect{
			{Kind: effects.KindDamage, Amount: 100, DamageType: damage.Physical},
		},
	})
	return reg
}

func buildMatch(seed int64) (*Simulation, Outcome, error) {
	sim := NewSimulation("", seed, brawlerRegistry(), event.NewLog(&bytes.Buffer{}, false), 1800)
	a := unit.NewUnit("a", unit.TeamA, map[unit.StatKey]float64{
		unit.MaxHP: 300, unit.AD: 40, unit.AttackSpeed: 0.8, unit.AttackRange: 1, unit.CritChance: 0.2, unit.CritDamage: 1.5,
	}, 100, hexcoord.Coord{Q: 0, R: 0})
	a.AbilityID = "smash"
	b := unit.NewUnit("b", unit.TeamB, map[unit.StatKey]float64{
		unit.MaxHP: 300, unit.AD: 40, unit.AttackSpeed: 0.8, unit.AttackRange: 1, unit.CritChance: 0.2, unit.CritDamage: 1.5,
	}, 100, hexcoord.Coord{Q: 4, R: 0})
	b.AbilityID = "smash"
	sim.AddUnit(a)
	sim.AddUnit(b)
	out, err := sim.Run()
	return sim, out, err
}

func TestBattleTerminates(t *testing.T) {
	_, out, err := buildMatch(42)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out.Ticks == 0 {
		t.Fatal("expected at least one tick to run")
	}
	if out.Winner != 0 && out.Winner != 1 && out.Winner != -1 {
		t.Fatalf("unexpected winner value %v", out.Winner)
	}
}

func TestSameSeedIsDeterministic(t *testing.T) {
	_, out1, _ := buildMatch(99)
	_, out2, _ := buildMatch(99)
	if out1.Ticks != out2.Ticks || out1.Winner != out2.Winner {
		t.Fatalf("same seed produced different outcomes: %+v vs %+v", out1, out2)
	}
}

var _ simctx.Sim = (*Simulation)(nil)
