// Package state describes the coarse combat state machine shared by every
// unit (spec.md §4.2): Idle, Moving, Attacking, Casting, Stunned, Dead,
// and the transitions the engine is allowed to drive between them. Unit
// itself stores its current unit.State and restores the pre-stun state
// on expiry (internal/unit.Unit.ClearStun); this package is the single
// place the legal-transition table lives so the engine and tests both
// consult the same rules instead of duplicating an ad hoc check.
package state

import "hexbattle/internal/unit"

// allowed lists, for each state, the states it may transition directly
// into. Stunned is listed for every non-dead state, and Stunned itself
// may return to any of them.
var allowed = map[unit.State]map[unit.State]bool{
	unit.StateIdle: {
		unit.StateMoving:     true,
		unit.StateAttacking:  true,
		unit.StateCasting:    true,
		unit.StateStunned:    true,
		unit.StateDead:       true,
	},
	unit.StateMoving: {
		unit.StateIdle:      true,
		unit.StateAttacking: true,
		unit.StateCasting:   true,
		unit.StateStunned:   true,
		unit.StateDead:      true,
	},
	unit.StateAttacking: {
		unit.StateIdle:    true,
		unit.StateMoving:  true,
		unit.StateCasting: true,
		unit.StateStunned: true,
		unit.StateDead:    true,
	},
	unit.StateCasting: {
		unit.StateIdle:    true,
		unit.StateStunned: true,
		unit.StateDead:    true,
	},
	unit.StateStunned: {
		unit.StateIdle:      true,
		unit.StateMoving:    true,
		unit.StateAttacking: true,
		unit.StateCasting:   true,
		unit.StateDead:      true,
	},
	unit.StateDead: {},
}

// CanTransition reports whether from->to is a legal state change. Dead is
// terminal: once dead, no transition is legal.
func CanTransition(from, to unit.State) bool {
	if from == unit.StateDead {
		return false
	}
	if from == to {
		return true
	}
	return allowed[from][to]
}

// Name returns a human-readable label, used by obslog diagnostics.
func Name(s unit.State) string {
	switch s {
	case unit.StateIdle:
		return "idle"
	case unit.StateMoving:
		return "moving"
	case unit.StateAttacking:
		return "attacking"
	case unit.StateCasting:
		return "casting"
	case unit.StateStunned:
		return "stunned"
	case unit.StateDead:
		return "dead"
	default:
		return "unknown"
	}
}
