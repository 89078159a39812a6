// Package unit implements the combat unit data model: effective-stat
// computation (stats.go), timed debuffs with refresh-don't-stack
// semantics (debuff.go), stacking buffs (buff.go), and the Unit aggregate
// tying them together with HP, shields, mana, and state (this file).
package unit

import "hexbattle/internal/hexcoord"

// ID identifies a unit for the lifetime of a simulation. Caller-provided
// (roster order), never randomly generated, so replays stay stable across
// runs (spec.md §3 "Unit").
type ID string

// Team is 0 or 1 (spec.md §2 "two eight-hex-wide teams").
type Team int

const (
	TeamA Team = 0
	TeamB Team = 1
)

// State is a unit's coarse activity state (spec.md §4.2 "state machine").
type State int

const (
	StateIdle State = iota
	StateMoving
	StateAttacking
	StateCasting
	StateStunned
	StateDead
)

// Unit is one combatant. Every cross-reference to another unit (target,
// last attacker) is by ID, never by pointer, so the arena stays the
// single owner of unit lifetime (spec.md §9 "back-references").
type Unit struct {
	ID   ID
	Team Team
	Star int // 1, 2, or 3

	Pos hexcoord.Coord

	Stats   *StatBlock
	Debuffs Debuffs
	buffs   buffList

	HP     float64
	Shield shieldPool

	Mana    float64
	MaxMana float64

	state State
	prevState State // restored when a stun expires

	AbilityID string
	CastTicksRemaining int
	CastAbility        string // ability id mid-cast, for CAST_END bookkeeping

	AttackCooldownTicks int

	TargetID ID
	HasTarget bool

	StackCounters map[string]int // item-provided stacking counters, keyed by group name

	SpawnedTick int

	ManaPerAttack float64

	replacedAttackEffects    []EffectRef
	ReplacedAttacksRemaining int
}

// EffectRef is an opaque handle to an effect descriptor, structurally
// identical to simctx.EffectRef (both are just "has a Kind() string
// method"); internal/unit cannot import internal/simctx or
// internal/effects without creating a cycle, so it declares its own copy
// of the minimal shape instead. Go's interface assignability only checks
// method sets, so values produced by internal/effects.Effect.AsRef() pass
// through this field untouched.
type EffectRef interface {
	Kind() string
}

// NewUnit builds a unit at its star-1 base stats; callers scale to the
// configured star level via ScaleForStar before combat starts.
func NewUnit(id ID, team Team, base map[StatKey]float64, maxMana float64, pos hexcoord.Coord) *Unit {
	sb := NewStatBlock(base)
	u := &Unit{
		ID:            id,
		Team:          team,
		Star:          1,
		Pos:           pos,
		Stats:         sb,
		HP:            sb.Effective(MaxHP),
		MaxMana:       maxMana,
		state:         StateIdle,
		StackCounters: make(map[string]int),
	}
	return u
}

// ScaleForStar applies spec.md §4.8's star-scaling rule to every base
// stat: multiplier is 1.0 / 1.8 / 3.24 for star 1/2/3 (1.8^(star-1)),
// applied once at roster-build time, before any buffs are registered.
func (u *Unit) ScaleForStar(star int) {
	u.Star = star
	mult := 1.0
	for i := 1; i < star; i++ {
		mult *= 1.8
	}
	for k := StatKey(0); k < statKeyCount; k++ {
		u.Stats.SetBase(k, u.Stats.Base(k)*mult)
	}
	u.HP = u.Stats.Effective(MaxHP)
}

func (u *Unit) IsAlive() bool { return u.state != StateDead && u.HP > 0 }

func (u *Unit) State() State { return u.state }

// SetState transitions the unit's coarse state, saving the prior state
// when entering Stunned so it can be restored on expiry (spec.md §4.2).
func (u *Unit) SetState(s State) {
	if s == StateStunned && u.state != StateStunned {
		u.prevState = u.state
	}
	u.state = s
}

// ClearStun restores whatever state the unit was in before being stunned.
func (u *Unit) ClearStun() {
	if u.state == StateStunned {
		u.state = u.prevState
	}
}

// Buffs exposes the buff list for application/removal by effects.
func (u *Unit) Buffs() *buffList { return &u.buffs }

// TickBuffsAndDebuffs advances all timed modifiers by one tick and
// returns this tick's burn true damage (for the caller to apply) and
// expired buff ids for BUFF_EXPIRED
// logging. Called once per tick, phase 1 (spec.md §5 "per-tick loop").
func (u *Unit) TickBuffsAndDebuffs() (burnDamage float64, expiredBuffs []string) {
	burnDamage = u.Debuffs.Tick()
	expiredBuffs = u.buffs.Tick(u.Stats)
	u.Shield.Tick()
	if u.Debuffs.IsStunned() {
		u.SetState(StateStunned)
	} else if u.state == StateStunned {
		u.ClearStun()
	}
	return burnDamage, expiredBuffs
}

// ApplyDamageToPools subtracts dmg from shields first (oldest first),
// then HP, per spec.md §4.7 step 7 "shield before HP". Returns the
// portion that actually landed on HP (used for lifesteal/omnivamp, which
// scale off HP damage dealt, not shield absorption).
func (u *Unit) ApplyDamageToPools(dmg float64) (hpDamage float64) {
	remaining := u.Shield.Absorb(dmg)
	u.HP -= remaining
	if u.HP < 0 {
		u.HP = 0
	}
	if u.HP <= 0 {
		u.SetState(StateDead)
	}
	return remaining
}

// SetReplacedAttacks swaps the unit's next charges auto-attacks to apply
// effects instead of a flat weapon hit (spec.md §4.10 "replace_attacks"),
// replacing whatever charges remained from a prior cast.
func (u *Unit) SetReplacedAttacks(effects []EffectRef, charges int) {
	u.replacedAttackEffects = effects
	u.ReplacedAttacksRemaining = charges
}

// ConsumeReplacedAttack returns the swapped-in effect list for one auto
// attack and decrements the remaining charge count, or reports false once
// exhausted so the caller falls back to a normal weapon hit.
func (u *Unit) ConsumeReplacedAttack() ([]EffectRef, bool) {
	if u.ReplacedAttacksRemaining <= 0 {
		return nil, false
	}
	u.ReplacedAttacksRemaining--
	return u.replacedAttackEffects, true
}

// Heal restores HP, reduced by any active wound debuff (spec.md §4.10
// "wound reduces healing received"), and clamped to max HP.
func (u *Unit) Heal(amount float64) (applied float64) {
	amount *= 1 - u.Debuffs.WoundPercent()
	if amount <= 0 {
		return 0
	}
	maxHP := u.Stats.Effective(MaxHP)
	before := u.HP
	u.HP += amount
	if u.HP > maxHP {
		u.HP = maxHP
	}
	return u.HP - before
}

// GrantMana adds mana, clamped to MaxMana, and reports whether the unit
// just crossed into "ready to cast" (spec.md §4.4 "mana threshold").
func (u *Unit) GrantMana(amount float64) (becameReady bool) {
	wasReady := u.Mana >= u.MaxMana
	u.Mana += amount
	if u.Mana > u.MaxMana {
		u.Mana = u.MaxMana
	}
	return !wasReady && u.Mana >= u.MaxMana
}

func (u *Unit) SpendMana() {
	u.Mana = 0
}

func (u *Unit) IsManaReady() bool { return u.MaxMana > 0 && u.Mana >= u.MaxMana }
