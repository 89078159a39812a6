package event

import (
	"encoding/json"
	"io"
)

// Log is an append-only JSON-lines event sink, grounded on the teacher's
// plain encoding/json usage for its own battle replay output — the corpus
// has no structured-log-as-data library, only logrus for operator
// diagnostics (see internal/obslog), so the data log stays on stdlib
// encoding/json by design.
type Log struct {
	enc    *json.Encoder
	events []Event
	keep   bool
}

// NewLog creates a log that streams to w. If keep is true, every event is
// also retained in memory for post-run assertions (tests, summaries).
func NewLog(w io.Writer, keep bool) *Log {
	return &Log{enc: json.NewEncoder(w), keep: keep}
}

func (l *Log) WriteHeader(h Header) error {
	return l.enc.Encode(h)
}

func (l *Log) Append(ev Event) error {
	if l.keep {
		l.events = append(l.events, ev)
	}
	return l.enc.Encode(ev)
}

// Events returns the retained events, if NewLog was called with keep=true.
func (l *Log) Events() []Event { return l.events }
