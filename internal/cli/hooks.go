package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and server events to a logger at debug level.
// Failures are logged as warnings.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks { return &logHooks{logger: l} }

func (h *logHooks) OnParseStart(_ context.Context, format string, size int) {
	h.logger.Debug("parse", "format", format, "bytes", size)
}

func (h *logHooks) OnParseComplete(_ context.Context, format string, dur time.Duration, err error) {
	if err != nil {
		h.logger.Warn("parse failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("parsed", "format", format, "dur", dur.Round(time.Microsecond))
}

func (h *logHooks) OnBuildComplete(_ context.Context, nodes, edges int, dur time.Duration) {
	h.logger.Debug("built", "nodes", nodes, "edges", edges, "dur", dur.Round(time.Microsecond))
}

func (h *logHooks) OnSearch(_ context.Context, query, outcome string) {
	h.logger.Debug("search", "query", query, "outcome", outcome)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", strings.Join(formats, ","))
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, dur time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", strings.Join(formats, ","), "error", err)
		return
	}
	h.logger.Debug("rendered", "formats", strings.Join(formats, ","), "dur", dur.Round(time.Millisecond))
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, dur time.Duration) {
	if status >= 500 {
		h.logger.Warn("server error", "method", method, "path", path, "status", status)
	}
}
