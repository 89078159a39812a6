package engine

import (
	"hexbattle/internal/effects"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/simctx"
	"hexbattle/internal/unit"
)

// zone is a create_zone effect's runtime state: a standing area that
// re-applies its child effect to every qualifying unit inside it every
// IntervalTicks, for DurationTicks total.
type zone struct {
	center        hexcoord.Coord
	spec          simctx.AoESpec
	effect        *effects.Effect
	intervalTicks int
	remainingTicks int
	nextFireIn    int
	casterID      unit.ID
	star          int
}

// intervalJob is an interval_trigger effect's runtime state: re-applies
// its child effect to a single bound target every IntervalTicks.
type intervalJob struct {
	effect        *effects.Effect
	targetID      unit.ID
	intervalTicks int
	remainingTicks int
	nextFireIn    int
	casterID      unit.ID
	star          int
}

func (s *Simulation) CreateZone(center hexcoord.Coord, spec simctx.AoESpec, effect simctx.EffectRef, intervalTicks, durationTicks, star int, casterID unit.ID) {
	e := effects.FromRef(effect)
	if e == nil {
		return
	}
	s.zones = append(s.zones, &zone{
		center:         center,
		spec:           spec,
		effect:         e,
		intervalTicks:  intervalTicks,
		remainingTicks: durationTicks,
		nextFireIn:     0,
		casterID:       casterID,
		star:           star,
	})
}

func (s *Simulation) ScheduleInterval(effect simctx.EffectRef, target unit.ID, intervalTicks, durationTicks, star int, casterID unit.ID) {
	e := effects.FromRef(effect)
	if e == nil {
		return
	}
	s.intervals = append(s.intervals, &intervalJob{
		effect:         e,
		targetID:       target,
		intervalTicks:  intervalTicks,
		remainingTicks: durationTicks,
		nextFireIn:     0,
		casterID:       casterID,
		star:           star,
	})
}

// tickZonesAndIntervals advances every standing zone and interval job by
// one tick, firing and pruning as needed. Runs once per tick, alongside
// phase 1 (spec.md §5).
func (s *Simulation) tickZonesAndIntervals() {
	liveZones := s.zones[:0]
	for _, z := range s.zones {
		z.remainingTicks--
		z.nextFireIn--
		if z.nextFireIn <= 0 {
			z.nextFireIn = z.intervalTicks
			caster := s.byID[z.casterID]
			if caster != nil {
				footprint := z.center.Circle(z.spec.Radius)
				set := make(map[hexcoord.Coord]bool, len(footprint))
				for _, h := range footprint {
					set[h] = true
				}
				for _, u := range s.poolForAffinity(caster, z.spec.Affinity) {
					if set[u.Pos] {
						s.effects.Apply(s, caster, u, z.effect, z.star)
					}
				}
			}
		}
		if z.remainingTicks > 0 {
			liveZones = append(liveZones, z)
		}
	}
	s.zones = liveZones

	liveJobs := s.intervals[:0]
	for _, j := range s.intervals {
		j.remainingTicks--
		j.nextFireIn--
		target := s.byID[j.targetID]
		if j.nextFireIn <= 0 {
			j.nextFireIn = j.intervalTicks
			caster := s.byID[j.casterID]
			if caster != nil && target != nil && target.IsAlive() {
				s.effects.Apply(s, caster, target, j.effect, j.star)
			}
		}
		if j.remainingTicks > 0 && target != nil && target.IsAlive() {
			liveJobs = append(liveJobs, j)
		}
	}
	s.intervals = liveJobs
}

func (s *Simulation) poolForAffinity(caster *unit.Unit, affinity string) []*unit.Unit {
	switch affinity {
	case "allies":
		return s.LiveAlliesOf(int(caster.Team), caster.ID)
	case "all":
		return s.LiveUnits()
	default:
		return s.LiveEnemiesOf(int(caster.Team))
	}
}
