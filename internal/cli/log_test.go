package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		level   log.Level
		debug   bool
		info    bool
		warning bool
	}{
		{log.DebugLevel, true, true, true},
		{log.InfoLevel, false, true, true},
		{log.WarnLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)

			for _, c := range []struct {
				logf func(msg any, keyvals ...any)
				want bool
			}{{l.Debug, tt.debug}, {l.Info, tt.info}, {l.Warn, tt.warning}} {
				buf.Reset()
				c.logf("message")
				if got := buf.Len() > 0; got != c.want {
					t.Errorf("logged = %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("built netlist")

	// "15:04:05.00" puts two colons and a dot before the message.
	out := buf.String()
	if i := strings.Index(out, "built netlist"); i < 0 || strings.Count(out[:i], ":") != 2 {
		t.Errorf("unexpected log line %q", out)
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	startStopwatch(newLogger(&buf, log.InfoLevel)).done("checked netlists", "count", 2)

	out := buf.String()
	for _, want := range []string{"checked netlists", "count=2", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	l := newLogger(&bytes.Buffer{}, log.DebugLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("withLogger should attach the logger")
	}
}
