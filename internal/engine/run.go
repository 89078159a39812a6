package engine

import (
	"github.com/google/uuid"

	"hexbattle/internal/event"
	"hexbattle/internal/hexgrid"
	"hexbattle/internal/obslog"
)

// Outcome is a completed run's summary, returned to the CLI.
type Outcome struct {
	RunID      string
	Ticks      int
	Winner     int // -1 draw/timeout, 0 or 1
	DurationS  float64
}

// Run drives the tick loop to completion: either a team is wiped out, or
// maxTicks passes (a draw, per spec.md §4.2 "termination"). uuid.NewString
// is used only to stamp the run's correlation id in diagnostics/log
// headers — it never seeds or otherwise influences gameplay randomness.
func (s *Simulation) Run() (Outcome, error) {
	if s.RunID == "" {
		s.RunID = uuid.NewString()
	}
	if s.log != nil {
		_ = s.log.WriteHeader(event.Header{
			Kind:     event.KindHeader,
			RunID:    s.RunID,
			Seed:     s.Seed,
			TickRate: ticksPerSecond,
			GridW:    hexgrid.Width,
			GridH:    hexgrid.Height,
		})
	}
	obslog.WithField("run_id", s.RunID).WithField("seed", s.Seed).Info("battle starting")

	for !s.ended {
		if err := s.SafeStep(); err != nil {
			obslog.Errorf("run %s: %v", s.RunID, err)
			return Outcome{RunID: s.RunID, Ticks: s.tick, Winner: -1}, err
		}
	}

	out := Outcome{
		RunID:     s.RunID,
		Ticks:     s.tick,
		Winner:    s.winner,
		DurationS: float64(s.tick) / float64(ticksPerSecond),
	}
	obslog.WithField("run_id", s.RunID).WithField("winner", s.winner).WithField("ticks", s.tick).Info("battle finished")
	return out, nil
}
