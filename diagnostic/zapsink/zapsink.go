// Package zapsink binds the core's diagnostic.Sink capability to a
// go.uber.org/zap SugaredLogger: one factory per level, fields attached
// via `With(k, v)` enrichment.
package zapsink

import (
	"github.com/cobaltlog/hier/diagnostic"
	"go.uber.org/zap"
)

func enrich(logger *zap.SugaredLogger, fields diagnostic.Fields) *zap.SugaredLogger {
	for k, v := range fields {
		logger = logger.With(k, v)
	}
	return logger
}

// Bind builds diagnostic.Factories that log through logger, one zap level
// per diagnostic.Level.
func Bind(logger *zap.SugaredLogger) diagnostic.Factories {
	return diagnostic.Factories{
		diagnostic.Debug: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { enrich(logger, fields).Debug(msg) }
		},
		diagnostic.Info: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { enrich(logger, fields).Info(msg) }
		},
		diagnostic.Warn: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { enrich(logger, fields).Warn(msg) }
		},
		diagnostic.Error: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) { enrich(logger, fields).Error(msg) }
		},
	}
}
