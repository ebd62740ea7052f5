package phonofix

import (
	"github.com/rs/zerolog"
)

// logger is the package-level logger, ported from the teacher's
// common/logger.go. It defaults to zerolog's disabled logger so that
// importing phonofix is silent until a caller opts in.
var logger = zerolog.Nop()

// SetLogger installs l as the package-level logger. Engines and Correctors
// read it each time they log, so the change also applies to ones built
// before this call.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// GetLogger returns the current package-level logger.
func GetLogger() zerolog.Logger {
	return logger
}
