package engine

import (
	"fmt"

	"hexbattle/internal/event"
)

// ConfigError marks a problem found while registering a unit or item,
// before Run starts — spec.md §7.1's first error class (unknown effect
// kind, malformed selector, missing ability id, stat out of range),
// distinct from an InvariantError raised mid-run. Fatal to the
// simulation instance: callers should not call AddUnit/EquipItem again
// after seeing one.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("invalid configuration: %v", e.Err) }

func (e *ConfigError) Unwrap() error { return e.Err }

// InvariantError marks a panic recovered at the tick boundary as an
// internal consistency failure rather than an expected combat outcome —
// spec.md §7's second error class. Expected combat conditions (a miss, a
// dodge, an empty target pool) are never errors; they are typed zero
// results handled in place, never panics.
type InvariantError struct {
	Tick int
	Err  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at tick %d: %v", e.Tick, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// SafeStep runs one Step, converting any panic into an *InvariantError
// instead of letting it unwind past the simulation boundary, and logs a
// terminal SIMULATION_PANIC event carrying the panic value. A
// configuration error (missing ability id, malformed YAML) is instead
// surfaced directly as a Go error before the run ever starts — only a
// genuine runtime inconsistency reaches this recover.
func (s *Simulation) SafeStep() (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				rerr = fmt.Errorf("%v", r)
			}
			err = &InvariantError{Tick: s.tick, Err: rerr}
			s.Log(event.Event{Kind: event.Kind("SIMULATION_PANIC"), Text: rerr.Error()})
		}
	}()
	s.Step()
	return nil
}
