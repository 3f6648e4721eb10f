// Package seelogsink binds the core's diagnostic.Sink capability to a
// cihub/seelog LoggerInterface. Seelog has no structured-field API, so
// fields are flattened into the message text rather than silently
// dropped.
package seelogsink

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cihub/seelog"
	"github.com/cobaltlog/hier/diagnostic"
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

// Bind builds diagnostic.Factories that log through logger.
func Bind(logger seelog.LoggerInterface) diagnostic.Factories {
	return diagnostic.Factories{
		diagnostic.Debug: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Debug(format(msg, fields)) }
		},
		diagnostic.Info: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Info(format(msg, fields)) }
		},
		diagnostic.Warn: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Warn(format(msg, fields)) }
		},
		diagnostic.Error: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Error(format(msg, fields)) }
		},
	}
}
