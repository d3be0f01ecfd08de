package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements all
// hook interfaces of this package.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to l, prefixed with "hooks".
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, paramsHash string) {
	h.logger.Debug("layout start", "params", short(paramsHash))
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, ev LayoutEvent, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("layout complete",
		"mullions", ev.Mullions,
		"drainage", ev.Drainage,
		"iterations", ev.Iterations,
		"converged", ev.Converged,
		"violations", ev.Violations,
		"duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnBatchComplete(_ context.Context, jobs, failed int, d time.Duration) {
	h.logger.Debug("batch complete", "jobs", jobs, "failed", failed, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
