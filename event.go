package hier

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/cobaltlog/hier/internal/location"
	"github.com/cobaltlog/hier/level"
)

// FixFlags records which lazily-capturable fields of a LoggingEvent have
// been frozen. Appenders that retain an event beyond the dispatch call
// that produced it (buffering/forwarding appenders) must Fix() the fields
// they need first.
type FixFlags uint16

const (
	FixNone         FixFlags = 0
	FixLocationInfo FixFlags = 1 << 0
	FixUserName     FixFlags = 1 << 1
	FixIdentity     FixFlags = 1 << 2
	FixMessage      FixFlags = 1 << 3
	FixThreadName   FixFlags = 1 << 4
	FixException    FixFlags = 1 << 5
	FixDomain       FixFlags = 1 << 6
	FixProperties   FixFlags = 1 << 7

	// FixPartial is the default capture policy used by buffering
	// forwarders: message plus the cheap fields, but not location (the
	// most expensive one to capture).
	FixPartial = FixMessage | FixThreadName | FixDomain

	// FixAll freezes every field so the event can outlive the producing
	// thread/context.
	FixAll = FixLocationInfo | FixUserName | FixIdentity | FixMessage | FixThreadName | FixException | FixDomain | FixProperties
)

// LoggingEvent is the immutable value handed from a Logger to the dispatch
// engine and on to every Appender on the additive walk.
//
// Exported accessor methods exist instead of exported fields so that the
// lazy fields (location, thread name, ...) can be populated on first
// access without letting callers observe a half-constructed struct.
type LoggingEvent struct {
	timestampUTC time.Time
	level        level.Level
	loggerName   string
	message      interface{}
	exception    error

	mu          sync.Mutex
	fixFlags    FixFlags
	threadName  string
	userName    string
	identity    string
	domain      string
	location    *location.Info
	properties  map[string]string
	locDepth    int
	hasLocation bool
}

// newLoggingEvent constructs an event at the given level for logger name,
// with the process domain and a snapshot of the hierarchy's properties
// captured eagerly (cheap) and location/thread/user captured lazily.
func newLoggingEvent(loggerName string, lvl level.Level, message interface{}, exception error, domain string, properties map[string]string, locationSkip int) *LoggingEvent {
	e := &LoggingEvent{
		timestampUTC: time.Now().UTC(),
		level:        lvl,
		loggerName:   loggerName,
		message:      message,
		exception:    exception,
		domain:       domain,
		properties:   properties,
		locDepth:     locationSkip,
	}
	return e
}

// Fix forces eager capture of the fields named by flags. Safe to call
// multiple times and from multiple goroutines; already-fixed fields are not
// recomputed.
func (e *LoggingEvent) Fix(flags FixFlags) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixLocked(flags)
}

func (e *LoggingEvent) fixLocked(flags FixFlags) {
	if flags&FixLocationInfo != 0 && !e.hasLocation {
		loc := location.Capture(e.locDepth + 2)
		e.location = &loc
		e.hasLocation = true
	}
	if flags&FixThreadName != 0 && e.threadName == "" {
		e.threadName = goroutineLabel()
	}
	if flags&FixUserName != 0 && e.userName == "" {
		e.userName = currentUserName()
	}
	if flags&FixIdentity != 0 && e.identity == "" {
		e.identity = currentUserName()
	}
	e.fixFlags |= flags
}

// TimestampUTC returns the event's creation time.
func (e *LoggingEvent) TimestampUTC() time.Time { return e.timestampUTC }

// Level returns the severity the event was logged at.
func (e *LoggingEvent) Level() level.Level { return e.level }

// LoggerName returns the name of the logger that produced the event.
func (e *LoggingEvent) LoggerName() string { return e.loggerName }

// LevelValue satisfies appender.Event.
func (e *LoggingEvent) LevelValue() int { return e.level.Value }

// LevelName satisfies appender.Event.
func (e *LoggingEvent) LevelName() string { return e.level.Name }

// MessageObject returns the raw message object passed by the caller.
func (e *LoggingEvent) MessageObject() interface{} { return e.message }

// Message renders the message object as a string, satisfying
// appender.Event.
func (e *LoggingEvent) Message() string {
	if s, ok := e.message.(string); ok {
		return s
	}
	if s, ok := e.message.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(e.message)
}

// Exception returns the error attached to the event, if any.
func (e *LoggingEvent) Exception() error { return e.exception }

// Domain returns the process domain name captured at hierarchy
// construction.
func (e *LoggingEvent) Domain() string { return e.domain }

// Properties returns the fixed snapshot of hierarchy properties at the time
// the event was created.
func (e *LoggingEvent) Properties() map[string]string { return e.properties }

// ThreadName lazily captures and returns the producing goroutine's label.
func (e *LoggingEvent) ThreadName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixLocked(FixThreadName)
	return e.threadName
}

// UserName lazily captures and returns the OS user running the process.
func (e *LoggingEvent) UserName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixLocked(FixUserName)
	return e.userName
}

// Identity lazily captures and returns the logged-in identity (mirrors
// UserName in this implementation, which has no separate auth context).
func (e *LoggingEvent) Identity() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixLocked(FixIdentity)
	return e.identity
}

// LocationInfo lazily captures and returns the call-site location.
func (e *LoggingEvent) LocationInfo() location.Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixLocked(FixLocationInfo)
	if e.location == nil {
		return location.Info{}
	}
	return *e.location
}

// FixFlags returns the flags fixed on this event so far.
func (e *LoggingEvent) FixFlags() FixFlags {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fixFlags
}

// goroutineLabel derives a stable per-goroutine label from the runtime
// stack header ("goroutine 18 [running]:"). Goroutines have no names, so
// the numeric id is the closest analogue to a thread name the platform
// offers.
func goroutineLabel() string {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	s := strings.TrimPrefix(string(buf), "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return ""
}

func currentUserName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}
