package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints timestamps as "14:32:01.45".
const logTimeFormat = "15:04:05.00"

// newLogger returns a logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
	})
	setLevel(l, level)
	return l
}

// setLevel sets the level of l. Debug output also reports the caller.
func setLevel(l *log.Logger, level log.Level) {
	l.SetLevel(level)
	l.SetReportCaller(level <= log.DebugLevel)
}

// logElapsed logs msg at info level with keyvals and the time since start.
func logElapsed(l *log.Logger, start time.Time, msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(start).Round(time.Millisecond))
	l.Info(msg, keyvals...)
}
