package exec

import (
	"fmt"
	"strings"
)

// ExecError is returned when a command cannot start or exits non-zero.
type ExecError struct {
	// Command is the full argument list, command name included.
	Command []string

	// ExitCode is -1 when the command never ran.
	ExitCode int

	Stdout string
	Stderr string

	Err error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	name := strings.Join(e.Command, " ")
	if name == "" {
		name = "<empty>"
	}
	if e.Err != nil {
		return fmt.Sprintf("command %q failed with exit code %d: %v", name, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %q failed with exit code %d", name, e.ExitCode)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}
