package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Built 3 nodes, 2 edges")

	if !strings.Contains(buf.String(), "Built 3 nodes, 2 edges") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		level log.Level
		fire  func(h *logHooks)
		want  string
	}{
		{"parse failure warns", log.InfoLevel, func(h *logHooks) {
			h.OnParseComplete(ctx, "json", time.Millisecond, errors.New("bad"))
		}, "parse failed"},
		{"search at debug", log.DebugLevel, func(h *logHooks) {
			h.OnSearch(ctx, "$.a", "not_found")
		}, "not_found"},
		{"render formats", log.DebugLevel, func(h *logHooks) {
			h.OnRenderStart(ctx, []string{"svg", "png"})
		}, "svg,png"},
		{"server error warns", log.InfoLevel, func(h *logHooks) {
			h.OnResponse(ctx, "GET", "/api/workspaces/x", 500, time.Millisecond)
		}, "server error"},
		{"search hidden at info", log.InfoLevel, func(h *logHooks) {
			h.OnSearch(ctx, "$.a", "found")
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fire(newLogHooks(newLogger(&buf, tt.level)))
			got := buf.String()
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no output, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("output %q does not contain %q", got, tt.want)
			}
		})
	}
}
