package bootstrap

import (
	"time"

	"github.com/synapseiq/site/logger"
)

// Option adjusts NewApp.
type Option func(*settings)

type settings struct {
	log             *logger.Logger
	gracefulTimeout time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{gracefulTimeout: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger skips logger.Init and logs through l instead.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGracefulTimeout bounds the onStop hooks plus component shutdown.
// Non-positive values keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.gracefulTimeout = d
		}
	}
}
