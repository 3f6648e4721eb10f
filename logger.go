package hier

import (
	"github.com/cobaltlog/hier/appender"
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/cobaltlog/hier/level"
)

// Logger is a handle onto a materialized node in the Hierarchy. Obtain
// one via Hierarchy.GetLogger or Hierarchy.Root; Logger values are cheap,
// comparable by the node they wrap, and safe for concurrent use.
type Logger struct {
	node *materializedNode
	hier *Hierarchy
}

// Name returns the logger's dotted name ("" for root).
func (l *Logger) Name() string { return l.node.name }

// IsRoot reports whether this Logger is the hierarchy's root.
func (l *Logger) IsRoot() bool { return l.node == l.hier.root }

// Hierarchy returns the owning Hierarchy.
func (l *Logger) Hierarchy() *Hierarchy { return l.hier }

// Parent returns the nearest Materialized ancestor, or nil for root.
func (l *Logger) Parent() *Logger {
	p := l.node.getParent()
	if p == nil {
		return nil
	}
	return &Logger{node: p, hier: l.hier}
}

// Level returns the logger's own level, or nil if it currently inherits
// from an ancestor. Only root is guaranteed non-nil.
func (l *Logger) Level() *level.Level {
	return l.node.getLevel()
}

// SetLevel sets the logger's own level. Passing nil clears it, so the
// logger again inherits its effective level from an ancestor. On root,
// nil is ignored with a diagnostic: the root level anchors every
// effective-level walk and must never be absent.
func (l *Logger) SetLevel(lvl *level.Level) {
	if l.IsRoot() && lvl == nil {
		l.hier.sink.Log(diagnostic.Warn, "root level cannot be null; ignored", nil)
		return
	}
	if lvl != nil {
		resolved := l.hier.levels.LookupWithDefault(*lvl)
		lvl = &resolved
	}
	l.node.setLevel(lvl, l.IsRoot())
}

// Additivity returns whether dispatch continues past this node to its
// parent.
func (l *Logger) Additivity() bool { return l.node.getAdditivity() }

// SetAdditivity sets this node's additivity flag.
func (l *Logger) SetAdditivity(a bool) { l.node.setAdditivity(a) }

// AddAppender attaches a to this logger.
func (l *Logger) AddAppender(a appender.Appender) { l.node.appenders.Add(a) }

// RemoveAppender detaches a single appender by identity.
func (l *Logger) RemoveAppender(a appender.Appender) { l.node.appenders.Remove(a) }

// RemoveAppenderByName detaches the first appender with the given name.
func (l *Logger) RemoveAppenderByName(name string) { l.node.appenders.RemoveByName(name) }

// RemoveAllAppenders detaches every appender from this logger.
func (l *Logger) RemoveAllAppenders() { l.node.appenders.RemoveAll() }

// Appenders returns the ordered appenders currently attached directly to
// this logger (not including ancestors).
func (l *Logger) Appenders() []appender.Appender { return l.node.appenders.Snapshot() }

// EffectiveLevel returns the level gating this logger's events: its own
// level if set, else the nearest ancestor's.
func (l *Logger) EffectiveLevel() level.Level {
	return effectiveLevel(l.node)
}

// IsEnabledFor reports whether an event at lvl would be dispatched.
func (l *Logger) IsEnabledFor(lvl level.Level) bool {
	return isEnabledFor(l.hier, l.node, lvl)
}

// Log submits an event at lvl. If the logger is not enabled for lvl the
// event is dropped without being constructed; otherwise a LoggingEvent is
// built and walked up the additive chain. A nil message with a nil
// exception is a programmer error and returns InvalidArgumentError.
func (l *Logger) Log(lvl level.Level, message interface{}, exception error) error {
	if message == nil && exception == nil {
		return newInvalidArgumentError("nil message and nil exception")
	}
	if !l.IsEnabledFor(lvl) {
		return nil
	}
	e := newLoggingEvent(l.node.name, lvl, message, exception, l.hier.domain, l.hier.propertiesSnapshot(), 2)
	callAppenders(l.hier, l.node, e)
	return nil
}

func (l *Logger) log(name string, message interface{}) error {
	lvl, ok := l.hier.levels.Lookup(name)
	if !ok {
		return newInvalidArgumentError("unknown level " + name)
	}
	return l.Log(lvl, message, nil)
}

// Debug logs at the DEBUG level, if enabled.
func (l *Logger) Debug(message interface{}) error { return l.log("DEBUG", message) }

// Info logs at the INFO level, if enabled.
func (l *Logger) Info(message interface{}) error { return l.log("INFO", message) }

// Warn logs at the WARN level, if enabled.
func (l *Logger) Warn(message interface{}) error { return l.log("WARN", message) }

// Error logs at the ERROR level, if enabled.
func (l *Logger) Error(message interface{}) error { return l.log("ERROR", message) }

// Fatal logs at the FATAL level, if enabled. It never calls os.Exit: the
// core is a library, and process termination policy belongs to the
// application.
func (l *Logger) Fatal(message interface{}) error { return l.log("FATAL", message) }
