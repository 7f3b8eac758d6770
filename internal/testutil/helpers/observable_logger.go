// Package helpers provides general test helper functions.
package helpers

import (
	"github.com/douhashi/remove-labels/internal/logger"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservableLogger returns a logger whose entries are recorded for assertions
func NewObservableLogger(level zapcore.Level) (logger.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return logger.NewWithCore(core), recorded
}
