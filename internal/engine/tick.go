package engine

import (
	"fmt"

	"hexbattle/internal/ability"
	"hexbattle/internal/damage"
	"hexbattle/internal/event"
	"hexbattle/internal/hexcoord"
	"hexbattle/internal/hexgrid"
	"hexbattle/internal/pathfind"
	"hexbattle/internal/projectile"
	"hexbattle/internal/state"
	"hexbattle/internal/unit"
)

const ticksPerSecond = 30

// setState drives a unit through the table internal/state owns, panicking
// (caught by SafeStep as an InvariantError) on a move the engine should
// never attempt. Unit-internal transitions (stun entry/exit, death) are
// applied directly via unit.SetState since they are always legal and
// internal/unit cannot import internal/state without a cycle.
func setState(u *unit.Unit, to unit.State) {
	if !state.CanTransition(u.State(), to) {
		panic(fmt.Errorf("illegal state transition for %s: %s -> %s", u.ID, state.Name(u.State()), state.Name(to)))
	}
	u.SetState(to)
}

// Step advances the simulation by exactly one tick, running the fixed
// six-phase loop spec.md §5 specifies: (1) buffs/debuffs tick, (2)
// ability-trigger checks, (3) AI decision, (4) execute actions, (5)
// projectile advance, (6) end-check.
func (s *Simulation) Step() {
	if s.ended {
		return
	}
	s.tick++

	s.phaseBuffsAndDebuffs()
	s.phaseAbilityTriggers()
	s.phaseAIDecision()
	s.phaseExecuteActions()
	s.phaseProjectiles()
	s.phaseEndCheck()
}

func (s *Simulation) phaseBuffsAndDebuffs() {
	s.tickZonesAndIntervals()
	for _, u := range s.units {
		if !u.IsAlive() {
			continue
		}
		burn, expired := u.TickBuffsAndDebuffs()
		if burn > 0 {
			res := damage.Resolve(s.rng, damage.Request{Caster: u, Target: u, Amount: burn, Type: damage.True, CanCrit: false, IgnoresDodge: true})
			s.GrantDamageMana(u, res.RawAmount, res.Mitigated)
			s.Log(event.Event{Kind: event.KindDamage, Source: string(u.ID), Target: string(u.ID), Value: res.HPDamage, Text: "burn"})
			if res.Killed {
				s.Log(event.Event{Kind: event.KindDeath, Target: string(u.ID)})
			}
		}
		for _, id := range expired {
			s.Log(event.Event{Kind: event.KindBuffExpired, Target: string(u.ID), Text: id})
		}
		if u.MaxMana > 0 {
			u.GrantMana(u.Stats.Effective(unit.ManaRegen) / ticksPerSecond)
		}
	}
}

func (s *Simulation) phaseAbilityTriggers() {
	for _, u := range s.units {
		if !u.IsAlive() || u.State() == unit.StateCasting || u.State() == unit.StateStunned {
			continue
		}
		if u.Debuffs.IsSilenced() || !u.IsManaReady() || u.AbilityID == "" {
			continue
		}
		def := s.abilities.Get(u.AbilityID)
		if def == nil {
			continue
		}
		target := ability.ChooseTarget(s, u, def)
		if target == nil {
			continue
		}
		u.SpendMana()
		setState(u, unit.StateCasting)
		u.CastAbility = u.AbilityID
		u.TargetID = target.ID
		u.HasTarget = true
		u.CastTicksRemaining = def.TotalCastTicks()
		s.Log(event.Event{Kind: event.KindCastStart, Source: string(u.ID), Target: string(target.ID), Text: def.ID})
	}
}

func (s *Simulation) phaseAIDecision() {
	for _, u := range s.units {
		if !u.IsAlive() || u.State() == unit.StateCasting || u.State() == unit.StateStunned {
			continue
		}
		enemies := s.LiveEnemiesOf(int(u.Team))
		if len(enemies) == 0 {
			continue
		}
		target := s.tauntTarget(u, enemies)
		if target == nil {
			target = nearest(u, enemies)
		}
		u.TargetID = target.ID
		u.HasTarget = true

		attackRange := int(u.Stats.Effective(unit.AttackRange))
		if u.Pos.Distance(target.Pos) <= attackRange {
			setState(u, unit.StateAttacking)
			continue
		}
		if u.Debuffs.IsStunned() || u.Debuffs.IsDisarmed() {
			continue
		}
		next, ok := pathfind.NextStep(s.grid, u.Pos, target.Pos)
		if !ok {
			continue
		}
		if s.grid.Move(toGridID(u.ID), next) {
			s.Log(event.Event{Kind: event.KindMove, Source: string(u.ID), FromQ: u.Pos.Q, FromR: u.Pos.R, ToQ: next.Q, ToR: next.R})
			u.Pos = next
			setState(u, unit.StateMoving)
		}
	}
}

func (s *Simulation) phaseExecuteActions() {
	for _, u := range s.units {
		if !u.IsAlive() {
			continue
		}
		if u.AttackCooldownTicks > 0 {
			u.AttackCooldownTicks--
		}

		switch u.State() {
		case unit.StateCasting:
			s.advanceCast(u)
		case unit.StateAttacking:
			s.tryBasicAttack(u)
		}
	}
}

func (s *Simulation) advanceCast(u *unit.Unit) {
	def := s.abilities.Get(u.CastAbility)
	if def == nil {
		setState(u, unit.StateIdle)
		return
	}
	u.CastTicksRemaining--
	remainingAfterEffectPoint := def.CastEndTicks
	if u.CastTicksRemaining == remainingAfterEffectPoint {
		target := s.byID[u.TargetID]
		if target != nil {
			ability.Execute(s, s.effects, u, target, def, u.Star)
		}
	}
	if u.CastTicksRemaining <= 0 {
		s.Log(event.Event{Kind: event.KindCastEnd, Source: string(u.ID), Text: def.ID})
		setState(u, unit.StateIdle)
	}
}

func (s *Simulation) tryBasicAttack(u *unit.Unit) {
	if u.Debuffs.IsDisarmed() || u.AttackCooldownTicks > 0 {
		return
	}
	target := s.byID[u.TargetID]
	if target == nil || !target.IsAlive() {
		setState(u, unit.StateIdle)
		return
	}
	attackRange := int(u.Stats.Effective(unit.AttackRange))
	if u.Pos.Distance(target.Pos) > attackRange {
		setState(u, unit.StateIdle)
		return
	}

	if refs, replaced := u.ConsumeReplacedAttack(); replaced {
		for _, ref := range refs {
			s.ApplyEffectRef(u, target, ref, u.Star)
		}
		if u.ManaPerAttack > 0 {
			u.GrantMana(u.ManaPerAttack)
		}
		s.Log(event.Event{Kind: event.KindAttack, Source: string(u.ID), Target: string(target.ID), Text: "replace_attacks"})
		speed := u.Stats.Effective(unit.AttackSpeed)
		if speed <= 0 {
			speed = 0.2
		}
		u.AttackCooldownTicks = int(ticksPerSecond / speed)
		return
	}

	res := damage.Resolve(s.rng, damage.Request{
		Caster: u, Target: target,
		Amount:     u.Stats.Effective(unit.AD),
		Type:       damage.Physical,
		CanCrit:    true,
		CritChance: -1,
		CritDamage: -1,
		Amps:       s.amplifiersFor(u.ID, u),
	})
	if !res.Dodged {
		s.GrantDamageMana(target, res.RawAmount, res.Mitigated)
	}
	if res.HPDamage > 0 {
		damage.ApplyLifesteal(u, damage.Physical, res.HPDamage)
	}
	if !res.Dodged && u.ManaPerAttack > 0 {
		u.GrantMana(u.ManaPerAttack)
	}
	s.Log(event.Event{Kind: event.KindAttack, Source: string(u.ID), Target: string(target.ID), Value: res.Mitigated, Crit: res.Crit, Dodged: res.Dodged})
	if res.Killed {
		s.Log(event.Event{Kind: event.KindDeath, Target: string(target.ID)})
	}

	speed := u.Stats.Effective(unit.AttackSpeed)
	if speed <= 0 {
		speed = 0.2
	}
	u.AttackCooldownTicks = int(ticksPerSecond / speed)
}

func (s *Simulation) phaseProjectiles() {
	for _, p := range s.proj.Live() {
		outcome := projectile.Advance(s, p)
		switch {
		case outcome.Impacted:
			s.resolveProjectileImpact(p, outcome.ImpactAt)
		case outcome.Missed:
			s.Log(event.Event{Kind: event.KindProjectileMiss, Source: string(p.SourceID), Target: string(p.TargetID)})
		}
	}
	s.proj.Prune()
}

// tauntTarget returns the unit overriding self's target selection, if
// self is taunted and the taunter is still a live member of pool, or nil
// if no taunt override applies (caller falls back to nearest-enemy).
func (s *Simulation) tauntTarget(self *unit.Unit, pool []*unit.Unit) *unit.Unit {
	tauntedBy, ok := self.Debuffs.TauntedBy()
	if !ok {
		return nil
	}
	for _, u := range pool {
		if u.ID == tauntedBy {
			return u
		}
	}
	return nil
}

func nearest(self *unit.Unit, pool []*unit.Unit) *unit.Unit {
	best := pool[0]
	bestD := self.Pos.Distance(best.Pos)
	for _, u := range pool[1:] {
		if d := self.Pos.Distance(u.Pos); d < bestD || (d == bestD && u.ID < best.ID) {
			best, bestD = u, d
		}
	}
	return best
}

func toGridID(id unit.ID) hexgrid.UnitID { return hexgrid.UnitID(id) }

// phaseEndCheck per spec.md §5: the battle ends when one team has no
// living units left, or when maxTicks is reached (a draw).
func (s *Simulation) phaseEndCheck() {
	aliveA, aliveB := false, false
	for _, u := range s.units {
		if !u.IsAlive() {
			continue
		}
		if u.Team == unit.TeamA {
			aliveA = true
		} else {
			aliveB = true
		}
	}
	switch {
	case !aliveA && !aliveB:
		s.ended, s.winner = true, -1
	case !aliveA:
		s.ended, s.winner = true, 1
	case !aliveB:
		s.ended, s.winner = true, 0
	case s.maxTicks > 0 && s.tick >= s.maxTicks:
		s.ended, s.winner = true, -1
	}
	if s.ended {
		s.Log(event.Event{Kind: event.KindEnd, Value: float64(s.winner)})
	}
}

func (s *Simulation) resolveProjectileImpact(p *projectile.Projectile, at hexcoord.Coord) {
	caster := s.byID[p.SourceID]
	if caster == nil {
		return
	}
	s.Log(event.Event{Kind: event.KindProjectileHit, Source: string(p.SourceID), Target: string(p.TargetID), ToQ: at.Q, ToR: at.R})

	if p.AoE != nil {
		for _, u := range s.poolForAffinity(caster, p.AoE.Affinity) {
			if u.Pos.Distance(at) <= p.AoE.Radius {
				for _, ref := range p.OnHit {
					s.ApplyEffectRef(caster, u, ref, p.StarLevel)
				}
			}
		}
		return
	}

	target := s.byID[p.TargetID]
	if target == nil || !target.IsAlive() {
		return
	}
	for _, ref := range p.OnHit {
		s.ApplyEffectRef(caster, target, ref, p.StarLevel)
	}
}
