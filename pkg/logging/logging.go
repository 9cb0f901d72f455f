package logging

import (
	"slices"

	"go.uber.org/zap"
	"tlog.app/go/errors"
)

// Levels lists the accepted level names
var Levels = []string{"debug", "info", "warn", "error"}

// New builds a console logger writing to stderr at the given level.
// An empty level means info.
func New(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	if !ValidLevel(level) {
		return nil, errors.New("unknown log level %q", level)
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// ValidLevel reports whether level is one of Levels
func ValidLevel(level string) bool {
	return slices.Contains(Levels, level)
}
