package hier

import (
	"fmt"
	"sync/atomic"

	"github.com/cobaltlog/hier/appender"
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/cobaltlog/hier/level"
)

// effectiveLevel walks node, then its ancestors via the parent pointer,
// returning the first non-nil level found. Root always carries a level
// (enforced by SetLevel), so the walk is guaranteed to terminate.
func effectiveLevel(node *materializedNode) level.Level {
	for n := node; n != nil; n = n.getParent() {
		if l := n.getLevel(); l != nil {
			return *l
		}
	}
	// Unreachable so long as root always carries a level; DEBUG is the
	// same fallback NewHierarchy seeds root with.
	return level.DEBUG
}

// isEnabledFor: disabled (unconfigured or below threshold) beats
// everything else, then the node's effective level gates lvl.
func isEnabledFor(h *Hierarchy, node *materializedNode, lvl level.Level) bool {
	if h.IsDisabled(lvl) {
		return false
	}
	return lvl.Value >= effectiveLevel(node).Value
}

// callAppenders starts at node, invokes every appender attached there,
// then continues to the parent as long as additivity holds, stopping at
// the first node with additivity=false or when root has been processed. A
// panicking Appender.Append is recovered and reported to the sink rather
// than unwinding into the caller's goroutine; an Appender fault must never
// take down the application.
func callAppenders(h *Hierarchy, node *materializedNode, e *LoggingEvent) {
	found := 0
	for n := node; n != nil; n = n.getParent() {
		for _, a := range n.appenders.Snapshot() {
			found++
			appendOne(h, a, e)
		}
		if !n.getAdditivity() {
			break
		}
	}
	if found == 0 {
		warnNoAppenders(h, node.name)
	}
}

func appendOne(h *Hierarchy, a appender.Appender, e *LoggingEvent) {
	defer func() {
		if r := recover(); r != nil {
			h.sink.Log(diagnostic.Error, "appender panicked", diagnostic.Fields{
				"panic": fmt.Sprint(r),
			})
		}
	}()
	if err := a.Append(e); err != nil {
		h.sink.Log(diagnostic.Error, "appender returned error", diagnostic.Fields{
			"error": err.Error(),
		})
	}
}

// warnNoAppenders fires the one-shot "no appenders found" diagnostic,
// exactly once per hierarchy regardless of how many loggers end up
// dispatching with no attached appender.
func warnNoAppenders(h *Hierarchy, loggerName string) {
	if !atomic.CompareAndSwapInt32(&h.noAppWarn, 0, 1) {
		return
	}
	h.sink.Log(diagnostic.Warn, "no appenders could be found", diagnostic.Fields{
		"logger": loggerName,
	})
}
