package state

import (
	"testing"

	"hexbattle/internal/unit"
)

func TestDeadIsTerminal(t *testing.T) {
	for _, to := range []unit.State{unit.StateIdle, unit.StateMoving, unit.StateAttacking, unit.StateCasting, unit.StateStunned, unit.StateDead} {
		if CanTransition(unit.StateDead, to) {
			t.Fatalf("Dead -> %s should be illegal", Name(to))
		}
	}
}

func TestSameStateIsAlwaysLegal(t *testing.T) {
	for _, s := range []unit.State{unit.StateIdle, unit.StateMoving, unit.StateAttacking, unit.StateCasting, unit.StateStunned} {
		if !CanTransition(s, s) {
			t.Fatalf("%s -> %s (no-op) should be legal", Name(s), Name(s))
		}
	}
}

func TestStunnedReachableFromEveryNonDeadState(t *testing.T) {
	for _, from := range []unit.State{unit.StateIdle, unit.StateMoving, unit.StateAttacking, unit.StateCasting} {
		if !CanTransition(from, unit.StateStunned) {
			t.Fatalf("%s -> Stunned should be legal", Name(from))
		}
	}
}

func TestStunnedReturnsToEveryNonDeadState(t *testing.T) {
	for _, to := range []unit.State{unit.StateIdle, unit.StateMoving, unit.StateAttacking, unit.StateCasting} {
		if !CanTransition(unit.StateStunned, to) {
			t.Fatalf("Stunned -> %s should be legal", Name(to))
		}
	}
}

func TestEveryNonDeadStateCanDie(t *testing.T) {
	for _, from := range []unit.State{unit.StateIdle, unit.StateMoving, unit.StateAttacking, unit.StateCasting, unit.StateStunned} {
		if !CanTransition(from, unit.StateDead) {
			t.Fatalf("%s -> Dead should be legal", Name(from))
		}
	}
}

func TestCastingCannotJumpDirectlyToAttackingOrMoving(t *testing.T) {
	if CanTransition(unit.StateCasting, unit.StateAttacking) {
		t.Fatal("Casting -> Attacking should be illegal; must resolve through Idle")
	}
	if CanTransition(unit.StateCasting, unit.StateMoving) {
		t.Fatal("Casting -> Moving should be illegal; must resolve through Idle")
	}
}

func TestNameCoversEveryState(t *testing.T) {
	for _, s := range []unit.State{unit.StateIdle, unit.StateMoving, unit.StateAttacking, unit.StateCasting, unit.StateStunned, unit.StateDead} {
		if Name(s) == "unknown" {
			t.Fatalf("Name(%v) returned unknown", s)
		}
	}
}
