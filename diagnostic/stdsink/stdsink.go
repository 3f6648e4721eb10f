// Package stdsink provides a dependency-free console diagnostic sink
// (diagnostic.Nop is the core's default; stdsink is what an application
// reaches for first when it wants to actually see the core's internal
// diagnostics without wiring a real logging backend). ANSI color codes
// are only emitted when the output is attached to a terminal.
package stdsink

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cobaltlog/hier/diagnostic"
	"github.com/cobaltlog/hier/internal/term"
)

const (
	colorReset  = "\x1b[0m"
	colorDebug  = "\x1b[36m" // cyan
	colorInfo   = "\x1b[32m" // green
	colorWarn   = "\x1b[33m" // yellow
	colorError  = "\x1b[31m" // red
	timeLayout  = "2006-01-02T15:04:05.000Z07:00"
)

// New builds diagnostic.Factories that write one line per message to w,
// colored if w is a terminal (auto-detected) unless color is forced via
// forceColor.
func New(w io.Writer, forceColor ...bool) diagnostic.Factories {
	colorize := isTerminal(w)
	if len(forceColor) > 0 {
		colorize = forceColor[0]
	}
	var mu sync.Mutex
	write := func(level diagnostic.Level, color string) diagnostic.Func {
		return func(msg string, fields diagnostic.Fields) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintln(w, line(level, color, colorize, msg, fields))
		}
	}
	return diagnostic.Factories{
		diagnostic.Debug: func(l diagnostic.Level) diagnostic.Func { return write(l, colorDebug) },
		diagnostic.Info:  func(l diagnostic.Level) diagnostic.Func { return write(l, colorInfo) },
		diagnostic.Warn:  func(l diagnostic.Level) diagnostic.Func { return write(l, colorWarn) },
		diagnostic.Error: func(l diagnostic.Level) diagnostic.Func { return write(l, colorError) },
	}
}

// Stderr is the conventional default: New(os.Stderr).
func Stderr() diagnostic.Factories { return New(os.Stderr) }

func isTerminal(w io.Writer) bool {
	return term.IsTty(w)
}

func line(level diagnostic.Level, color string, colorize bool, msg string, fields diagnostic.Fields) string {
	ts := time.Now().UTC().Format(timeLayout)
	body := fmt.Sprintf("%s %-5s %s%s", ts, level.String(), msg, fieldsSuffix(fields))
	if !colorize {
		return body
	}
	return color + body + colorReset
}

func fieldsSuffix(fields diagnostic.Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return " " + strings.Join(parts, " ")
}
