// Package glogsink binds the core's diagnostic.Sink capability to
// golang/glog. glog has no Debug level, so Debug folds onto glog.Info; it
// also has no structured-field API, so fields are flattened into the
// message the same way as seelogsink.
package glogsink

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cobaltlog/hier/diagnostic"
	"github.com/golang/glog"
)

func format(msg string, fields diagnostic.Fields) string {
	if len(fields) == 0 {
		return msg
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
	return msg + " " + strings.Join(parts, " ")
}

// Bind builds diagnostic.Factories backed by glog's package-level
// functions (glog has no instance to hold onto).
func Bind() diagnostic.Factories {
	return diagnostic.Factories{
		diagnostic.Debug: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { glog.Info(format(msg, fields)) }
		},
		diagnostic.Info: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { glog.Info(format(msg, fields)) }
		},
		diagnostic.Warn: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { glog.Warning(format(msg, fields)) }
		},
		diagnostic.Error: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { glog.Error(format(msg, fields)) }
		},
	}
}
