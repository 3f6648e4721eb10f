// Package diagnostic is the sink capability the core hands its own
// internal debug/warn/error messages to: configuration-element failures,
// appender errors, the one-shot "no appenders found" warning.
//
// A Sink is a level-indexed table of logger functions built once at
// construction, with no runtime reflection and no baked-in global
// default. Fields alone is enough context for configuration/dispatch
// diagnostics; there is no request context to thread through.
package diagnostic

import "fmt"

// Level is the severity of an internal diagnostic message. Deliberately a
// separate, smaller vocabulary than level.Level: diagnostics are about
// the core's own health, not about application log events.
type Level uint8

const (
	Debug Level = 10
	Info  Level = 20
	Warn  Level = 30
	Error Level = 40
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", uint8(l))
	}
}

// Fields is free-form structured context attached to a diagnostic message.
type Fields map[string]interface{}

// Func is a single-use logging function for a specific level, returned by a
// Factory. This indirection lets a binding capture call-site-adjacent state
// (e.g. a SugaredLogger already bound to one of zap's per-level methods)
// without re-dispatching on level for every call.
type Func func(msg string, fields Fields)

// Factory builds a Func for a given level. Factories are supplied once, per
// level, at construction (see New), not per call.
type Factory func(level Level) Func

// Factories maps each supported Level to a Factory. The special key All
// may be used to supply one default Factory that covers every level not
// given its own entry.
type Factories map[Level]Factory

// All is a pseudo-level used only as a key into Factories, meaning "every
// level without its own entry".
const All Level = 0

// Sink is the DiagnosticSink capability.
type Sink interface {
	Log(level Level, msg string, fields Fields)
}

type sink struct {
	funcs map[Level]Func
}

// New builds a Sink from facs. If a built-in level (Debug/Info/Warn/Error)
// has no explicit entry, the Factories[All] default is used; if neither is
// present, that level silently becomes a no-op rather than panicking (the
// core's own diagnostics must never be able to crash the core).
func New(facs Factories) Sink {
	def := facs[All]
	resolved := make(map[Level]Func, 4)
	for _, lvl := range []Level{Debug, Info, Warn, Error} {
		if fac, ok := facs[lvl]; ok {
			resolved[lvl] = fac(lvl)
			continue
		}
		if def != nil {
			resolved[lvl] = def(lvl)
			continue
		}
		resolved[lvl] = func(string, Fields) {}
	}
	return &sink{funcs: resolved}
}

func (s *sink) Log(level Level, msg string, fields Fields) {
	f, ok := s.funcs[level]
	if !ok || f == nil {
		return
	}
	f(msg, fields)
}

// Nop is a Sink that discards everything. Used as the core's zero value so
// NewHierarchy never requires a caller to supply one.
func Nop() Sink {
	return New(Factories{All: func(Level) Func {
		return func(string, Fields) {}
	}})
}
