// Package exec runs local commands behind a mockable interface.
//
// It exists so that providers which drive a command line client (the aws
// CLI, for example) can be tested without the client installed. Production
// code builds a *Command; tests substitute mocks.ExecutorMock.
//
// # Usage
//
//	aws := exec.NewWrapper(exec.New(exec.WithInheritEnv()), "aws")
//	result, err := aws.WithContext(ctx).Run("sts", "get-caller-identity")
//	if err != nil {
//		var execErr *exec.ExecError
//		if errors.As(err, &execErr) {
//			fmt.Println(execErr.ExitCode, execErr.Stderr)
//		}
//	}
//
// Every With method returns a new Executor and leaves the receiver
// unchanged, so a configured Executor can be shared between goroutines.
//
// # Failures
//
// A command that cannot start or exits non-zero returns both the captured
// Result and an *ExecError. Callers that understand the command's error
// output, such as providers/cli, parse ExecError.Stderr.
package exec
