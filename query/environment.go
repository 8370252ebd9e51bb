package query

import (
	"runtime"

	"github.com/go-kit/log"
)

// Environment carries the settings shared by every dataset of one plan. A
// nil *Environment is valid and behaves like NewEnvironment().
type Environment struct {
	parallelism int
	logger      log.Logger
}

// EnvOption configures an Environment.
type EnvOption func(*Environment)

// WithParallelism sets the number of workers used by Distinct. Values below
// one are ignored.
func WithParallelism(n int) EnvOption {
	return func(e *Environment) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithLogger sets the logger used for plan tracing.
func WithLogger(l log.Logger) EnvOption {
	return func(e *Environment) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEnvironment creates an environment. Defaults: one worker per CPU and a
// no-op logger.
func NewEnvironment(opts ...EnvOption) *Environment {
	e := &Environment{
		parallelism: runtime.GOMAXPROCS(0),
		logger:      log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parallelism returns the configured worker count. A nil environment uses
// one worker per CPU.
func (e *Environment) Parallelism() int {
	if e == nil {
		return runtime.GOMAXPROCS(0)
	}
	return e.parallelism
}

func (e *Environment) log() log.Logger {
	if e == nil {
		return log.NewNopLogger()
	}
	return e.logger
}
