package hier

import "github.com/pkg/errors"

// InvalidArgumentError is returned for programmer-error conditions: a
// Logger.Log call with both a nil message and a nil exception, or a level
// name the hierarchy's level map does not know. A nil LoggerFactory is not
// an error: GetLogger substitutes DefaultLoggerFactory. These are the only
// conditions the core ever surfaces to a caller; everything else is
// absorbed and reported to the DiagnosticSink.
type InvalidArgumentError struct {
	msg string
}

func (e *InvalidArgumentError) Error() string { return "hier: invalid argument: " + e.msg }

func newInvalidArgumentError(msg string) error {
	return errors.WithStack(&InvalidArgumentError{msg: msg})
}

// HierarchyContentionError is returned when an optimistic registry update
// exceeds its retry budget. The mutex-guarded registry used by this
// implementation never produces contention failures, but the type is part
// of the public error taxonomy so a future lock-free registry can report
// it without an API break.
type HierarchyContentionError struct {
	Name string
}

func (e *HierarchyContentionError) Error() string {
	return "hier: contention creating logger " + e.Name
}
