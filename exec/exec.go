package exec

import (
	"context"
	"time"
)

//go:generate go run github.com/matryer/moq@latest -out mocks/executor.go -pkg mocks . Executor

// Executor runs commands.
type Executor interface {
	// WithEnv adds environment variables. Later values override earlier ones.
	WithEnv(env map[string]string) Executor

	// WithContext sets the context; cancelling it kills the command.
	WithContext(ctx context.Context) Executor

	// WithTimeout bounds the run time of the command. Zero disables it.
	WithTimeout(timeout time.Duration) Executor

	// WithInheritEnv passes the parent process environment to the command.
	WithInheritEnv() Executor

	// WithDisableColors sets NO_COLOR, TERM=dumb and friends.
	WithDisableColors() Executor

	// Run executes args[0] with the remaining args.
	Run(args ...string) (*Result, error)
}

// Result is the captured output of a command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Option configures a Command at creation time.
type Option func(*Command)

// WithEnv returns an Option that adds environment variables.
func WithEnv(env map[string]string) Option {
	return func(c *Command) {
		c.config.addEnv(env)
	}
}

// WithTimeout returns an Option that sets a default timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Command) {
		c.config.timeout = timeout
	}
}

// WithInheritEnv returns an Option that enables environment inheritance.
func WithInheritEnv() Option {
	return func(c *Command) {
		c.config.inheritEnv = true
	}
}

// WithDisableColors returns an Option that disables color output.
func WithDisableColors() Option {
	return func(c *Command) {
		c.config.disableColors = true
	}
}
