// Package location captures a single call-site frame lazily, so the cost
// is only paid when a LoggingEvent's fix-flags actually request it.
package location

import (
	"fmt"
	"strconv"

	"github.com/go-stack/stack"
)

// Info is the frozen location of a log call.
type Info struct {
	File     string
	Line     int
	Function string
}

// String renders Info the way a %+v stack.Call would.
func (i Info) String() string {
	return fmt.Sprintf("%s:%d %s", i.File, i.Line, i.Function)
}

// Capture walks the goroutine's call stack skip frames up from its own
// caller and returns the first frame found there. skip=0 means "my
// immediate caller".
func Capture(skip int) Info {
	c := stack.Caller(skip + 1)
	line, _ := strconv.Atoi(fmt.Sprintf("%d", c))
	return Info{
		File:     fmt.Sprintf("%s", c),
		Function: fmt.Sprintf("%n", c),
		Line:     line,
	}
}
