// Package obslog provides the batch-driver logging used by cmd/tszemit:
// per-file emission timing and helper-usage summaries. This is distinct
// from internal/logger's Log/Msg, the per-file diagnostic channel for
// external collaborators, which the core never appends to; obslog never
// participates in a single file's emission,
// only in the driver wrapped around many of them.
package obslog

import (
	"github.com/hashicorp/go-hclog"
)

// New builds the root logger for a tszemit invocation. verbose raises the
// level to Debug; otherwise the driver only logs Info and above.
func New(verbose bool) hclog.Logger {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "tszemit",
		Level: level,
	})
}

// FileResult is one worker's outcome, logged by the driver after each file
// completes (§5 "Batch driver concurrency").
type FileResult struct {
	Path           string
	DurationMillis float64
	HelperCount    int
	HadErrors      bool
}

// LogFileResult emits one structured record per completed file.
func LogFileResult(log hclog.Logger, r FileResult) {
	fields := []interface{}{
		"path", r.Path,
		"duration_ms", r.DurationMillis,
		"helpers", r.HelperCount,
	}
	if r.HadErrors {
		log.Warn("emitted with errors", fields...)
		return
	}
	log.Debug("emitted", fields...)
}
