// Package logging wraps zerolog with the single global logger pattern the
// teacher's own internal/utils/logger package uses (see the
// logger.Logger().With()...Logger() idiom in
// internal/backend/bw6-633/cs/r1cs_sparse.go): one configured
// zerolog.Logger, fetched once per call site and specialized with .With().
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetLevel overrides the global logger's minimum level. cmd/symbreach
// calls this from a --verbose flag.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level)
}

// Logger returns the current global logger, safe to call concurrently.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event { return Logger().Debug() }

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event { return Logger().Info() }

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event { return Logger().Warn() }

// Err starts an error-level event wrapping err, mirroring the teacher's
// log.Err(err).Send() idiom.
func Err(err error) *zerolog.Event { return Logger().Err(err) }
