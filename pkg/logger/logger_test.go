package logger

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level LogLevel) *Logger {
	return New(Config{Level: level, Output: buf})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", DEBUG, true},
		{" INFO ", INFO, true},
		{"warning", WARN, true},
		{"Fatal", FATAL, true},
		{"", INFO, false},
		{"verbose", INFO, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, WARN)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	l.Warnf("shown %d", 3)
	l.Errorf("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered lines:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[WARN] shown 4") {
		t.Errorf("missing warn lines:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("colour codes written to a buffer:\n%q", out)
	}
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG)
	child := l.With("[req 1234]").With("[sqlite]")

	child.Infof("hello")
	l.Infof("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], "[INFO] [req 1234] [sqlite] hello") {
		t.Errorf("child line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[INFO] plain") {
		t.Errorf("parent line = %q", lines[1])
	}
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, INFO)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("boom: %s", "bad csv")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "[FATAL] boom: bad csv") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, INFO)
	l.StdLogger().Printf("http: TLS handshake error")

	if !strings.Contains(buf.String(), "[WARN] http: TLS handshake error\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSetColorize(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Output: &buf, Colorize: true})

	l.Warnf("coloured")
	if !strings.Contains(buf.String(), colorYellow+"[WARN]"+colorReset) {
		t.Errorf("Expected a coloured level:\n%q", buf.String())
	}

	buf.Reset()
	l.SetColorize(false)
	l.Warnf("plain")
	if strings.Contains(buf.String(), "\033[") || !strings.Contains(buf.String(), "[WARN] plain") {
		t.Errorf("Expected plain output:\n%q", buf.String())
	}
}

// TestSetup tests the command-line overrides on the default logger
func TestSetup(t *testing.T) {
	l := GetLogger()
	l.mu.Lock()
	prevLevel, prevColor, prevOut := l.level, l.colorize, l.out
	l.mu.Unlock()
	t.Cleanup(func() {
		l.SetLevel(prevLevel)
		l.SetColorize(prevColor)
		l.SetOutput(prevOut)
	})

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetColorize(true)

	if err := Setup("verbose", false); err == nil {
		t.Error("Expected error for unknown level")
	}
	if err := Setup("warn", true); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	Infof("hidden")
	Warnf("shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info line written at WARN level:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] shown 1") {
		t.Errorf("Expected plain warn line:\n%q", out)
	}

	if err := Setup("", false); err != nil {
		t.Fatalf("Setup with no overrides failed: %v", err)
	}
	l.mu.Lock()
	level := l.level
	l.mu.Unlock()
	if level != WARN {
		t.Errorf("Empty level changed the level to %v", level)
	}
}
