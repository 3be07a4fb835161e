package paintview

import (
	"fmt"
	"os"
	"time"
)

// Debug enables verbose stderr logging and disposed-object assertions
// throughout the package. Off by default; tests and example hosts may set
// it to catch use-after-Destroy bugs early.
var Debug = false

// frameStats holds per-frame timing for the ViewController's Tick+Render
// pair. Only printed when Debug is true.
type frameStats struct {
	tickTime   time.Duration
	renderTime time.Duration
	layerCount int
}

func debugLogFrame(stats frameStats) {
	if !Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[paintview] tick: %v | render: %v | layers: %d\n",
		stats.tickTime, stats.renderTime, stats.layerCount)
}

// debugCheckDisposed panics with a descriptive message when a destroyed
// layer is used. A no-op unless Debug is true.
func debugCheckDisposed(destroyed bool, op, name string) {
	if !Debug {
		return
	}
	if destroyed {
		panic(fmt.Sprintf("paintview debug: %s on destroyed layer %q", op, name))
	}
}

// debugLogHistory logs a history-manager mutation (execute/undo/redo/merge).
func debugLogHistory(action string, undoDepth, redoDepth int) {
	if !Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[paintview] history: %s | undo=%d redo=%d\n", action, undoDepth, redoDepth)
}
