// Package log15sink binds the core's diagnostic.Sink capability to an
// inconshreveable/log15 Logger, flattening diagnostic.Fields into log15's
// variadic key-value Ctx pairs. No stack-depth calibration is needed: the
// core never reports call-site location through its diagnostic sink, only
// through LoggingEvent.
package log15sink

import (
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/inconshreveable/log15"
)

func buildContext(fields diagnostic.Fields) []interface{} {
	ctx := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		ctx = append(ctx, k, v)
	}
	return ctx
}

// Bind builds diagnostic.Factories that log through logger.
func Bind(logger log15.Logger) diagnostic.Factories {
	return diagnostic.Factories{
		diagnostic.Debug: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Debug(msg, buildContext(fields)...) }
		},
		diagnostic.Info: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Info(msg, buildContext(fields)...) }
		},
		diagnostic.Warn: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Warn(msg, buildContext(fields)...) }
		},
		diagnostic.Error: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { logger.Error(msg, buildContext(fields)...) }
		},
	}
}
