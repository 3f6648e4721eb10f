// Package logrussink binds the core's diagnostic.Sink capability to a
// sirupsen/logrus Logger. The IsLevelEnabled pre-check avoids building a
// *logrus.Entry when the level is filtered out.
package logrussink

import (
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/sirupsen/logrus"
)

func enrich(logger *logrus.Logger, fields diagnostic.Fields) *logrus.Entry {
	return logger.WithFields(logrus.Fields(fields))
}

// Bind builds diagnostic.Factories that log through logger.
func Bind(logger *logrus.Logger) diagnostic.Factories {
	return diagnostic.Factories{
		diagnostic.Debug: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) {
				if logger.IsLevelEnabled(logrus.DebugLevel) {
					enrich(logger, fields).Debug(msg)
				}
			}
		},
		diagnostic.Info: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) {
				if logger.IsLevelEnabled(logrus.InfoLevel) {
					enrich(logger, fields).Info(msg)
				}
			}
		},
		diagnostic.Warn: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) {
				if logger.IsLevelEnabled(logrus.WarnLevel) {
					enrich(logger, fields).Warn(msg)
				}
			}
		},
		diagnostic.Error: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, fields diagnostic.Fields) {
				if logger.IsLevelEnabled(logrus.ErrorLevel) {
					enrich(logger, fields).Error(msg)
				}
			}
		},
	}
}
