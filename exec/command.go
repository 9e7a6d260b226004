package exec

import (
	"bytes"
	"context"
	"os"
	osexec "os/exec"
	"sort"
	"time"
)

var colorEnv = map[string]string{
	"NO_COLOR":       "1",
	"TERM":           "dumb",
	"CLICOLOR":       "0",
	"CLICOLOR_FORCE": "0",
	"FORCE_COLOR":    "0",
}

type config struct {
	env           map[string]string
	timeout       time.Duration
	inheritEnv    bool
	disableColors bool
}

func (c config) clone() config {
	out := c
	out.env = make(map[string]string, len(c.env))
	for k, v := range c.env {
		out.env[k] = v
	}
	return out
}

func (c *config) addEnv(env map[string]string) {
	if c.env == nil {
		c.env = make(map[string]string, len(env))
	}
	for k, v := range env {
		c.env[k] = v
	}
}

// environ returns the command environment. A nil result makes os/exec fall
// back to the parent environment.
func (c config) environ() []string {
	var out []string
	if c.inheritEnv {
		out = os.Environ()
	}

	merged := make(map[string]string, len(c.env)+len(colorEnv))
	for k, v := range c.env {
		merged[k] = v
	}
	if c.disableColors {
		for k, v := range colorEnv {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+merged[k])
	}
	return out
}

// Command runs commands with os/exec.
type Command struct {
	config config
	ctx    context.Context
}

// New creates a Command.
func New(opts ...Option) *Command {
	cmd := &Command{ctx: context.Background()}
	for _, opt := range opts {
		opt(cmd)
	}
	return cmd
}

func (c *Command) with(fn func(*Command)) Executor {
	next := &Command{config: c.config.clone(), ctx: c.ctx}
	fn(next)
	return next
}

// WithEnv adds environment variables.
func (c *Command) WithEnv(env map[string]string) Executor {
	return c.with(func(n *Command) { n.config.addEnv(env) })
}

// WithContext sets the context.
func (c *Command) WithContext(ctx context.Context) Executor {
	return c.with(func(n *Command) { n.ctx = ctx })
}

// WithTimeout sets the timeout.
func (c *Command) WithTimeout(timeout time.Duration) Executor {
	return c.with(func(n *Command) { n.config.timeout = timeout })
}

// WithInheritEnv enables environment inheritance.
func (c *Command) WithInheritEnv() Executor {
	return c.with(func(n *Command) { n.config.inheritEnv = true })
}

// WithDisableColors disables color output.
func (c *Command) WithDisableColors() Executor {
	return c.with(func(n *Command) { n.config.disableColors = true })
}

// Run executes args[0] with the remaining args.
func (c *Command) Run(args ...string) (*Result, error) {
	if len(args) == 0 {
		return nil, &ExecError{ExitCode: -1, Err: osexec.ErrNotFound}
	}

	ctx := c.ctx
	if c.config.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := osexec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = c.config.environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		return result, &ExecError{
			Command:  args,
			ExitCode: result.ExitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}
	return result, nil
}
