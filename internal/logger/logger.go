package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger at the given verbosity. format "console" selects the
// human-readable development encoder; anything else logs JSON.
func New(verbosity, format string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if format == "console" {
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	level, err := zap.ParseAtomicLevel(verbosity)
	if err != nil {
		return nil, err
	}
	config.Level = level
	return config.Build()
}
