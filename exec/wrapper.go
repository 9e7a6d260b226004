package exec

import (
	"context"
	"time"
)

// CommandWrapper prepends a fixed command name to every Run, e.g. "aws".
type CommandWrapper struct {
	executor Executor
	cmd      string
}

// NewWrapper wraps executor so that Run(args...) runs cmd args...
func NewWrapper(executor Executor, cmd string) *CommandWrapper {
	return &CommandWrapper{executor: executor, cmd: cmd}
}

// Name returns the wrapped command name.
func (w *CommandWrapper) Name() string {
	return w.cmd
}

func (w *CommandWrapper) wrap(e Executor) Executor {
	return &CommandWrapper{executor: e, cmd: w.cmd}
}

// WithEnv adds environment variables.
func (w *CommandWrapper) WithEnv(env map[string]string) Executor {
	return w.wrap(w.executor.WithEnv(env))
}

// WithContext sets the context.
func (w *CommandWrapper) WithContext(ctx context.Context) Executor {
	return w.wrap(w.executor.WithContext(ctx))
}

// WithTimeout sets the timeout.
func (w *CommandWrapper) WithTimeout(timeout time.Duration) Executor {
	return w.wrap(w.executor.WithTimeout(timeout))
}

// WithInheritEnv enables environment inheritance.
func (w *CommandWrapper) WithInheritEnv() Executor {
	return w.wrap(w.executor.WithInheritEnv())
}

// WithDisableColors disables color output.
func (w *CommandWrapper) WithDisableColors() Executor {
	return w.wrap(w.executor.WithDisableColors())
}

// Run runs the wrapped command with args.
func (w *CommandWrapper) Run(args ...string) (*Result, error) {
	full := make([]string, 0, len(args)+1)
	full = append(full, w.cmd)
	return w.executor.Run(append(full, args...)...)
}
