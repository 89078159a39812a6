// Package projectile manages in-flight projectiles between cast
// resolution and impact (spec.md §4.9 "Projectile"). A homing projectile
// tracks its target's current hex every tick; a ballistic one commits to
// the hex the target occupied at launch. Grounded on the teacher's
// straight-line move-toward-goal stepping (mini_bot_yml.go's
// tryMoveTowards, generalized from squares to hexes) for advance, and on
// DESIGN.md's Open Question resolution for what happens when a
// projectile arrives at a hex its target no longer holds.
package projectile

import (
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/simctx"
	"hexbattle/internal/unit"
)

// Projectile is one in-flight shot. Entities are id-indexed (SourceID /
// TargetID), never pointer-linked, so a dying unit doesn't leave a
// dangling reference behind.
type Projectile struct {
	ID       int
	SourceID unit.ID
	TargetID unit.ID
	Homing   bool
	CanMiss  bool
	Speed    float64 // hexes per tick

	Pos       hexcoord.Coord // fractional position tracked via frac
	fracQ     float64
	fracR     float64
	Dest      hexcoord.Coord // committed destination for non-homing shots

	Origin      hexcoord.Coord // launch hex, the pivot for AngleOffset
	AngleOffset float64        // radians; fans a swarm/spread projectile out around Origin->target

	StarLevel int
	OnHit     []simctx.EffectRef
	AoE       *simctx.AoESpec

	alive bool
}

// Manager owns the set of live projectiles for one simulation.
type Manager struct {
	nextID int
	items  []*Projectile
}

func NewManager() *Manager { return &Manager{} }

// Spawn creates a new projectile and adds it to the manager.
func (m *Manager) Spawn(spec simctx.ProjectileSpec, initialTargetHex hexcoord.Coord) *Projectile {
	m.nextID++
	dest := initialTargetHex
	if spec.AngleOffset != 0 {
		dest = dest.Rotated(spec.StartHex, spec.AngleOffset)
	}
	p := &Projectile{
		ID:          m.nextID,
		SourceID:    spec.SourceID,
		TargetID:    spec.TargetID,
		Homing:      spec.Homing,
		CanMiss:     spec.CanMiss,
		Speed:       spec.Speed,
		Pos:         spec.StartHex,
		fracQ:       float64(spec.StartHex.Q),
		fracR:       float64(spec.StartHex.R),
		Dest:        dest,
		Origin:      spec.StartHex,
		AngleOffset: spec.AngleOffset,
		StarLevel:   spec.StarLevel,
		OnHit:       spec.OnHit,
		AoE:         spec.AoEOnImpact,
		alive:       true,
	}
	m.items = append(m.items, p)
	return p
}

func (m *Manager) Live() []*Projectile {
	out := make([]*Projectile, 0, len(m.items))
	for _, p := range m.items {
		if p.alive {
			out = append(out, p)
		}
	}
	return out
}

// Prune drops dead projectiles from the manager's backing slice.
func (m *Manager) Prune() {
	kept := m.items[:0]
	for _, p := range m.items {
		if p.alive {
			kept = append(kept, p)
		}
	}
	m.items = kept
}

// Outcome describes what a projectile's advance produced this tick.
type Outcome struct {
	Impacted bool
	Missed   bool
	ImpactAt hexcoord.Coord
}

// Advance moves p one tick toward its target (re-tracking the target's
// live hex if Homing) and reports whether it reached its destination.
func Advance(sim simctx.Sim, p *Projectile) Outcome {
	if !p.alive {
		return Outcome{}
	}

	dest := p.Dest
	if p.Homing {
		if target := sim.FindUnit(p.TargetID); target != nil && target.IsAlive() {
			dest = target.Pos
			if p.AngleOffset != 0 {
				dest = dest.Rotated(p.Origin, p.AngleOffset)
			}
			p.Dest = dest
		}
	}

	dq := float64(dest.Q) - p.fracQ
	dr := float64(dest.R) - p.fracR
	dist := hexDist(dq, dr)
	if dist <= p.Speed || dist == 0 {
		p.fracQ, p.fracR = float64(dest.Q), float64(dest.R)
		p.Pos = dest
		return resolveImpact(sim, p, dest)
	}

	t := p.Speed / dist
	p.fracQ += dq * t
	p.fracR += dr * t
	p.Pos = hexcoord.Coord{Q: round(p.fracQ), R: round(p.fracR)}
	return Outcome{}
}

// resolveImpact finalizes a projectile that has reached its destination
// hex. An AoE payload always detonates at the hex, since area effects
// resolve by hex occupancy rather than by original target identity. Per
// DESIGN.md's Open Question resolution, a single-target shot with CanMiss
// set, homing or not, is a miss when its original target is gone, dead,
// or not standing on the impact hex; a fanned swarm shot lands on its
// rotated hex, so it counts as a hit only if that hex holds the target.
// Without CanMiss the shot always reports an impact.
func resolveImpact(sim simctx.Sim, p *Projectile, at hexcoord.Coord) Outcome {
	p.alive = false
	if p.AoE != nil {
		return Outcome{Impacted: true, ImpactAt: at}
	}
	target := sim.FindUnit(p.TargetID)
	if target == nil || !target.IsAlive() || target.Pos != at {
		if p.CanMiss {
			return Outcome{Missed: true, ImpactAt: at}
		}
	}
	return Outcome{Impacted: true, ImpactAt: at}
}

func hexDist(dq, dr float64) float64 {
	ds := -dq - dr
	v := absf(dq)
	if absf(dr) > v {
		v = absf(dr)
	}
	if absf(ds) > v {
		v = absf(ds)
	}
	return v
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
