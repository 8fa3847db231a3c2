// SPDX-License-Identifier: Apache-2.0

// Package log provides the process-wide structured logger used by every
// actor and adapter in the media source subsystem.
package log

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	base zerolog.Logger
)

// Base returns the process-wide base logger, initializing it on first use.
func Base() zerolog.Logger {
	once.Do(func() {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().
			Timestamp().
			Str("service", "mediasource").
			Logger()
	})
	return base
}

// L is shorthand for Base(), matching the call-site idiom used throughout
// the actors (log.L().Info()...).
func L() zerolog.Logger {
	return Base()
}

// SetLevel adjusts the minimum level of the base logger. Intended for use
// by cmd/mediasourcectl and tests.
func SetLevel(level zerolog.Level) {
	once.Do(func() {})
	base = base.Level(level)
}
