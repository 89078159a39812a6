// Package targeting implements the target-selection policies abilities
// and basic attacks choose from (spec.md §4.6). Every policy is a pure
// function of the live roster plus an rng.Stream for tie-breaking, so
// selection stays deterministic: ties are broken by stable unit ID order,
// never by map iteration order, and any randomized policy draws only
// from the supplied stream.
package targeting

import (
	"sort"

	"hexbattle/internal/hexcoord"
	"hexbattle/internal/rng"
	"hexbattle/internal/unit"
)

// Policy names one of the built-in selection strategies.
type Policy string

const (
	Nearest          Policy = "nearest"
	Farthest         Policy = "farthest"
	LowestHPPercent  Policy = "lowest_hp_percent"
	LowestHPFlat     Policy = "lowest_hp_flat"
	HighestStat      Policy = "highest_stat"
	Cluster          Policy = "cluster"
	Random           Policy = "random"
	Frontline        Policy = "frontline"
	Backline         Policy = "backline"
	CurrentTarget    Policy = "current_target"
)

// Request bundles everything a Selector needs: the acting unit, the
// candidate pool (already filtered to the correct affinity by the
// caller), an optional max range (0 = unlimited), and the stat to sort by
// for HighestStat.
type Request struct {
	Self        *unit.Unit
	Candidates  []*unit.Unit
	MaxRange    int
	StatKey     unit.StatKey
	ClusterRadius int
	RNG         *rng.Stream
}

// Select runs the named policy and returns the chosen unit, or nil if no
// candidate qualifies (e.g. all out of MaxRange).
func Select(policy Policy, req Request) *unit.Unit {
	pool := inRange(req.Self, req.Candidates, req.MaxRange)
	if len(pool) == 0 {
		return nil
	}
	sortStable(pool)

	switch policy {
	case Nearest:
		return extreme(req.Self, pool, true)
	case Farthest:
		return extreme(req.Self, pool, false)
	case LowestHPPercent:
		return lowest(pool, func(u *unit.Unit) float64 {
			max := u.Stats.Effective(unit.MaxHP)
			if max <= 0 {
				return 0
			}
			return u.HP / max
		})
	case LowestHPFlat:
		return lowest(pool, func(u *unit.Unit) float64 { return u.HP })
	case HighestStat:
		return highest(pool, func(u *unit.Unit) float64 { return u.Stats.Effective(req.StatKey) })
	case Cluster:
		return mostClustered(req, pool)
	case Random:
		if req.RNG == nil {
			return pool[0]
		}
		return pool[req.RNG.ChoiceIndex(len(pool))]
	case Frontline:
		return extremeByAxis(req.Self, pool, true)
	case Backline:
		return extremeByAxis(req.Self, pool, false)
	case CurrentTarget:
		if req.Self.HasTarget {
			for _, u := range pool {
				if u.ID == req.Self.TargetID {
					return u
				}
			}
		}
		return nil
	default:
		return extreme(req.Self, pool, true)
	}
}

func inRange(self *unit.Unit, pool []*unit.Unit, maxRange int) []*unit.Unit {
	if maxRange <= 0 {
		return pool
	}
	out := pool[:0:0]
	for _, u := range pool {
		if self.Pos.Distance(u.Pos) <= maxRange {
			out = append(out, u)
		}
	}
	return out
}

// sortStable orders candidates by ID so every policy's tie-breaking is
// deterministic regardless of roster build order.
func sortStable(pool []*unit.Unit) {
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
}

func extreme(self *unit.Unit, pool []*unit.Unit, nearest bool) *unit.Unit {
	best := pool[0]
	bestD := self.Pos.Distance(best.Pos)
	for _, u := range pool[1:] {
		d := self.Pos.Distance(u.Pos)
		if (nearest && d < bestD) || (!nearest && d > bestD) {
			best, bestD = u, d
		}
	}
	return best
}

// extremeByAxis picks the most/least advanced unit along the team's
// forward axis (R coordinate) for frontline/backline targeting.
func extremeByAxis(self *unit.Unit, pool []*unit.Unit, frontline bool) *unit.Unit {
	forward := 1
	if self.Team == unit.TeamB {
		forward = -1
	}
	best := pool[0]
	bestScore := best.Pos.R * forward
	for _, u := range pool[1:] {
		score := u.Pos.R * forward
		if (frontline && score > bestScore) || (!frontline && score < bestScore) {
			best, bestScore = u, score
		}
	}
	return best
}

func lowest(pool []*unit.Unit, score func(*unit.Unit) float64) *unit.Unit {
	best := pool[0]
	bestScore := score(best)
	for _, u := range pool[1:] {
		if s := score(u); s < bestScore {
			best, bestScore = u, s
		}
	}
	return best
}

func highest(pool []*unit.Unit, score func(*unit.Unit) float64) *unit.Unit {
	best := pool[0]
	bestScore := score(best)
	for _, u := range pool[1:] {
		if s := score(u); s > bestScore {
			best, bestScore = u, s
		}
	}
	return best
}

// mostClustered picks the candidate with the most other candidates within
// ClusterRadius hexes of it, favoring AoE-friendly targets.
func mostClustered(req Request, pool []*unit.Unit) *unit.Unit {
	radius := req.ClusterRadius
	if radius <= 0 {
		radius = 2
	}
	best := pool[0]
	bestCount := -1
	for _, candidate := range pool {
		count := 0
		for _, other := range pool {
			if other.ID == candidate.ID {
				continue
			}
			if candidate.Pos.Distance(other.Pos) <= radius {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = candidate, count
		}
	}
	return best
}

// DistanceRank sorts a pool by distance from origin, nearest first, for
// callers that need an ordered list rather than a single pick (e.g.
// splash/ricochet chaining).
func DistanceRank(origin hexcoord.Coord, pool []*unit.Unit) []*unit.Unit {
	out := append([]*unit.Unit(nil), pool...)
	sort.Slice(out, func(i, j int) bool {
		di, dj := origin.Distance(out[i].Pos), origin.Distance(out[j].Pos)
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out
}
