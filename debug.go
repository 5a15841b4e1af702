package text2d

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
	elapsed      float64
}

// debugOut is where debug stats are written.
var debugOut io.Writer = os.Stderr

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	_, _ = fmt.Fprintf(debugOut,
		"[text2d] t=%.3fs | traverse: %v | sort: %v | submit: %v | total: %v | commands: %d\n",
		stats.elapsed, stats.traverseTime, stats.sortTime, stats.submitTime, total, stats.commandCount)
}
