// Package obslog is the operator-facing diagnostic logger: startup,
// config-load failures, invariant panics, per-run summaries. It is
// distinct from internal/event's plain-JSON battle log, which is the
// simulation's data output rather than a diagnostic stream. Grounded on
// Cognitive-Dungeon-cd-backend-go/pkg/logger's logrus.New() +
// JSONFormatter wrapper.
package obslog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel adjusts verbosity (e.g. from the CLI's -log-level flag).
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		base.Warnf("unknown log level %q, keeping %s", level, base.GetLevel())
		return
	}
	base.SetLevel(lvl)
}

func WithField(key string, value any) *logrus.Entry { return base.WithField(key, value) }

func Infof(format string, args ...any)  { base.Infof(format, args...) }
func Warnf(format string, args ...any)  { base.Warnf(format, args...) }
func Errorf(format string, args ...any) { base.Errorf(format, args...) }
func Fatalf(format string, args ...any) { base.Fatalf(format, args...) }
