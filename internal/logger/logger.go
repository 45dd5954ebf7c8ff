// Package logger provides the process-wide structured logger.
package logger

import (
	"go.uber.org/zap"
)

// New builds a production zap logger at the given level. An unknown level
// falls back to info.
func New(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
