// Command battlesim runs one deterministic hex-grid battle from a
// config directory and a battle placement file, writing a JSON event
// log and printing a JSON summary. Grounded on the teacher's cmd/simsvc
// (flag-based single/batch runner over internal/combat.RunSingle),
// generalized from its fixed boss-vs-party script to a configurable
// two-team roster.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"hexbattle/internal/config"
	"hexbattle/internal/engine"
	"hexbattle/internal/event"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/obslog"
	"hexbattle/internal/unit"
)

func main() {
	var cfgDir, battlePath, out, logLevel string
	var seed int64
	var maxTicks int
	var keepLog bool

	flag.StringVar(&cfgDir, "config", "assets", "config dir (defaults.yaml, units.yaml, abilities.yaml, traits.yaml, items.yaml)")
	flag.StringVar(&battlePath, "battle", "battle.yaml", "battle placement file")
	flag.StringVar(&out, "out", "battle_log.json", "event log output path")
	flag.Int64Var(&seed, "seed", 12345, "deterministic RNG seed")
	flag.IntVar(&maxTicks, "max-ticks", 30*60, "tick cap before a run is declared a draw")
	flag.BoolVar(&keepLog, "keep-events", false, "also retain every event in memory, besides writing it to -out (uses more RAM)")
	flag.StringVar(&logLevel, "log-level", "info", "operator log verbosity (debug, info, warn, error)")
	flag.Parse()

	obslog.SetLevel(logLevel)

	bundle, err := config.LoadAll(cfgDir)
	if err != nil {
		obslog.Fatalf("loading config: %v", err)
	}
	battle, err := config.LoadBattle(battlePath)
	if err != nil {
		obslog.Fatalf("loading battle file: %v", err)
	}

	f, err := os.Create(out)
	if err != nil {
		obslog.Fatalf("creating output: %v", err)
	}
	defer f.Close()
	logSink := event.NewLog(f, keepLog)

	maxTicksEffective := maxTicks
	if maxTicks <= 0 && bundle.Defaults.MaxTicks > 0 {
		maxTicksEffective = bundle.Defaults.MaxTicks
	}
	effectiveSeed := seed
	if seed == 0 && bundle.Defaults.DefaultSeed != 0 {
		effectiveSeed = bundle.Defaults.DefaultSeed
	}

	sim := engine.NewSimulation("", effectiveSeed, bundle.BuildAbilityRegistry(), logSink, maxTicksEffective)
	if d := bundle.Defaults; d.ManaOnDamagePre != 0 || d.ManaOnDamagePost != 0 || d.ManaOnDamageCap != 0 {
		sim.SetManaOnDamageParams(d.ManaOnDamagePre, d.ManaOnDamagePost, d.ManaOnDamageCap)
	}

	unitsA := placeTeam(sim, bundle, battle.TeamA, unit.TeamA)
	unitsB := placeTeam(sim, bundle, battle.TeamB, unit.TeamB)
	applyTraitBonuses(bundle, unitsA)
	applyTraitBonuses(bundle, unitsB)
	for _, pu := range append(unitsA, unitsB...) {
		pu.u.HP = pu.u.Stats.Effective(unit.MaxHP)
	}

	outcome, err := sim.Run()
	if err != nil {
		obslog.Errorf("run ended with invariant error: %v", err)
		os.Exit(1)
	}

	summary := map[string]any{
		"run_id": outcome.RunID,
		"ticks":  outcome.Ticks,
		"winner": outcome.Winner,
		"seconds": outcome.DurationS,
	}
	b, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(b))
}

type placedUnit struct {
	u   *unit.Unit
	def *config.UnitDef
}

func placeTeam(sim *engine.Simulation, bundle *config.Bundle, placements []config.Placement, team unit.Team) []placedUnit {
	out := make([]placedUnit, 0, len(placements))
	for i, p := range placements {
		def := bundle.UnitByID(p.UnitID)
		if def == nil {
			obslog.Fatalf("unknown unit id %q in battle file", p.UnitID)
		}
		id := unit.ID(fmt.Sprintf("%s_%d_%d", p.UnitID, team, i))
		u := unit.NewUnit(id, team, def.BaseStats(), def.MaxMana, hexcoord.Coord{Q: p.Q, R: p.R})
		star := p.Star
		if star <= 0 {
			star = 1
		}
		u.ScaleForStar(star)
		u.AbilityID = def.AbilityID
		u.ManaPerAttack = def.ManaOnHit
		if err := sim.AddUnit(u); err != nil {
			obslog.Fatalf("placing unit %q: %v", p.UnitID, err)
		}

		for _, itemID := range p.Items {
			applyItem(sim, bundle, u, itemID)
		}
		out = append(out, placedUnit{u: u, def: def})
	}
	return out
}

// applyTraitBonuses counts, per trait carried by this team's roster, how
// many units carry it, finds the highest breakpoint met, and applies
// that breakpoint's flat/percent bonuses to every carrier — a one-time
// stat grant at roster-build time, not a timed buff (spec.md's
// original_source supplement: trait_manager bookkeeping).
func applyTraitBonuses(bundle *config.Bundle, placed []placedUnit) {
	counts := map[string]int{}
	for _, pu := range placed {
		for _, t := range pu.def.Traits {
			counts[t]++
		}
	}
	for _, trait := range bundle.Traits.Traits {
		count := counts[trait.ID]
		if count == 0 {
			continue
		}
		var best *config.TraitBreakpoint
		for i := range trait.Breakpoints {
			bp := &trait.Breakpoints[i]
			if count >= bp.Count && (best == nil || bp.Count > best.Count) {
				best = bp
			}
		}
		if best == nil {
			continue
		}
		for _, pu := range placed {
			if !hasTrait(pu.def.Traits, trait.ID) {
				continue
			}
			for stat, v := range best.Flat {
				if k, ok := config.StatKeyByName(stat); ok {
					pu.u.Stats.AddFlat(k, "trait:"+trait.ID, v)
				}
			}
			for stat, v := range best.Percent {
				if k, ok := config.StatKeyByName(stat); ok {
					pu.u.Stats.AddPercent(k, "trait:"+trait.ID, v)
				}
			}
		}
	}
}

func hasTrait(traits []string, id string) bool {
	for _, t := range traits {
		if t == id {
			return true
		}
	}
	return false
}

func applyItem(sim *engine.Simulation, bundle *config.Bundle, u *unit.Unit, itemID string) {
	for _, item := range bundle.Items.Items {
		if item.ID != itemID {
			continue
		}
		for stat, v := range item.Flat {
			if k, ok := config.StatKeyByName(stat); ok {
				u.Stats.AddFlat(k, "item:"+item.ID, v)
			}
		}
		for stat, v := range item.Percent {
			if k, ok := config.StatKeyByName(stat); ok {
				u.Stats.AddPercent(k, "item:"+item.ID, v)
			}
		}
		if item.DamageAmpPct != 0 {
			if err := sim.EquipItem(u.ID, item.DamageAmpPct); err != nil {
				obslog.Fatalf("equipping item %q: %v", item.ID, err)
			}
		}
		return
	}
}

