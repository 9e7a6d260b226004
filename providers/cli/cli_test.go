//nolint:contextcheck // Context is passed via Executor.WithContext() but linter cannot verify
package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/svcerr"
	"github.com/jmgilman/go/svcerr/errors"
	"github.com/jmgilman/go/svcerr/exec"
	"github.com/jmgilman/go/svcerr/exec/mocks"
)

// setupMockExecutor creates a mock executor with proper method chaining for testing.
func setupMockExecutor(t *testing.T, runFunc func(args ...string) (*exec.Result, error)) *mocks.ExecutorMock {
	t.Helper()

	var mockExec *mocks.ExecutorMock
	mockExec = &mocks.ExecutorMock{
		WithEnvFunc: func(env map[string]string) exec.Executor {
			return mockExec
		},
		WithContextFunc: func(ctx context.Context) exec.Executor {
			return mockExec
		},
		WithTimeoutFunc: func(timeout time.Duration) exec.Executor {
			return mockExec
		},
		WithInheritEnvFunc: func() exec.Executor {
			return mockExec
		},
		WithDisableColorsFunc: func() exec.Executor {
			return mockExec
		},
		RunFunc: runFunc,
	}

	return mockExec
}

// failure mimics the exec package's behavior for a non-zero exit.
func failure(args []string, exitCode int, stderr string) (*exec.Result, error) {
	result := &exec.Result{Stderr: stderr, ExitCode: exitCode}
	return result, &exec.ExecError{
		Command:  args,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      stderrors.New("exit status 254"),
	}
}

func newTestProvider(t *testing.T, runFunc func(args ...string) (*exec.Result, error), opts ...Option) (*CLIProvider, *mocks.ExecutorMock) {
	t.Helper()

	mock := setupMockExecutor(t, func(args ...string) (*exec.Result, error) {
		if len(args) == 2 && args[1] == "--version" {
			return &exec.Result{Stdout: "aws-cli/2.15.0 Python/3.11.6 Linux/6.5.0 exe/x86_64\n"}, nil
		}
		return runFunc(args...)
	})

	provider, err := NewCLIProvider(append([]Option{WithExecutor(mock)}, opts...)...)
	require.NoError(t, err)
	return provider, mock
}

func TestNewCLIProvider(t *testing.T) {
	t.Run("success with custom executor", func(t *testing.T) {
		mock := setupMockExecutor(t, func(args ...string) (*exec.Result, error) {
			assert.Equal(t, []string{"aws", "--version"}, args)
			return &exec.Result{Stdout: "aws-cli/2.15.0"}, nil
		})

		provider, err := NewCLIProvider(WithExecutor(mock))
		require.NoError(t, err)
		assert.NotNil(t, provider)
		assert.Len(t, mock.RunCalls(), 1)
	})

	t.Run("fails when aws is missing", func(t *testing.T) {
		mock := setupMockExecutor(t, func(args ...string) (*exec.Result, error) {
			return nil, &exec.ExecError{Command: args, ExitCode: -1, Err: stderrors.New(`exec: "aws": executable file not found in $PATH`)}
		})

		provider, err := NewCLIProvider(WithExecutor(mock))
		assert.Error(t, err)
		assert.Nil(t, provider)
		assert.Equal(t, errors.CodeExecutionFailed, errors.GetCode(err))
	})

	t.Run("option errors", func(t *testing.T) {
		for name, opt := range map[string]Option{
			"nil executor":  WithExecutor(nil),
			"empty profile": WithProfile(""),
			"empty region":  WithRegion(""),
			"nil logger":    WithLogger(nil),
		} {
			t.Run(name, func(t *testing.T) {
				provider, err := NewCLIProvider(opt)
				assert.Nil(t, provider)
				assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
			})
		}
	})
}

func TestCLIProvider_Call(t *testing.T) {
	var got []string
	provider, mock := newTestProvider(t, func(args ...string) (*exec.Result, error) {
		got = args
		return &exec.Result{Stdout: `{"Buckets": []}`}, nil
	}, WithProfile("dev"), WithRegion("eu-west-1"))

	ctx := context.Background()
	result, err := provider.Call(ctx, "s3api", "ListObjectsV2", "--bucket", "artifacts")
	require.NoError(t, err)
	assert.Equal(t, `{"Buckets": []}`, result.Stdout)
	assert.Equal(t, []string{
		"aws", "s3api", "list-objects-v2", "--bucket", "artifacts",
		"--profile", "dev", "--region", "eu-west-1", "--output", "json",
	}, got)

	require.Len(t, mock.WithContextCalls(), 1)
	assert.Equal(t, ctx, mock.WithContextCalls()[0].Ctx)
}

func TestCLIProvider_CallServiceError(t *testing.T) {
	stderr := "\nAn error occurred (NoSuchBucket) when calling the ListObjectsV2 operation: The specified bucket does not exist\n"
	provider, _ := newTestProvider(t, func(args ...string) (*exec.Result, error) {
		return failure(args, 254, stderr)
	})

	_, err := provider.Call(context.Background(), "s3api", "ListObjectsV2", "--bucket", "missing")
	require.Error(t, err)

	caught, serr := svcerr.Catch(svcerr.Code("NoSuchBucket"), svcerr.Operation("ListObjectsV2")).Select(err)
	require.NoError(t, serr)
	require.NotNil(t, caught)
	assert.Equal(t, "The specified bucket does not exist", caught.Message())

	var execErr *exec.ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 254, execErr.ExitCode)
}

func TestCLIProvider_CallOtherFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	provider, _ := newTestProvider(t, func(args ...string) (*exec.Result, error) {
		return failure(args, 252, "aws: error: argument --bucket is required\n")
	}, WithLogger(logger))

	_, err := provider.Call(context.Background(), "s3api", "ListObjectsV2")
	require.Error(t, err)
	assert.Equal(t, errors.CodeExecutionFailed, errors.GetCode(err))
	assert.Contains(t, err.Error(), "argument --bucket is required")
	assert.Contains(t, logs.String(), "aws CLI failed")

	_, xerr := svcerr.Extract(err)
	assert.Equal(t, errors.CodeTypeMismatch, errors.GetCode(xerr))
}

func TestCLIProvider_CallJSON(t *testing.T) {
	provider, _ := newTestProvider(t, func(args ...string) (*exec.Result, error) {
		switch args[1] {
		case "sts":
			return &exec.Result{Stdout: `{"Account": "123456789012", "Arn": "arn:aws:iam::123456789012:user/ci"}`}, nil
		case "empty":
			return &exec.Result{Stdout: "\n"}, nil
		default:
			return &exec.Result{Stdout: "not json"}, nil
		}
	})

	var identity struct {
		Account string
		Arn     string
	}
	require.NoError(t, provider.CallJSON(context.Background(), "sts", "GetCallerIdentity", &identity))
	assert.Equal(t, "123456789012", identity.Account)

	var untouched map[string]any
	require.NoError(t, provider.CallJSON(context.Background(), "empty", "Noop", &untouched))
	assert.Nil(t, untouched)

	err := provider.CallJSON(context.Background(), "broken", "Noop", &untouched)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		stderr  string
		code    string
		op      string
		message string
		ok      bool
	}{
		{
			name:    "client error",
			stderr:  "An error occurred (AccessDenied) when calling the GetObject operation: Access Denied",
			code:    "AccessDenied",
			op:      "GetObject",
			message: "Access Denied",
			ok:      true,
		},
		{
			name:    "retries exhausted",
			stderr:  "\nAn error occurred (ThrottlingException) when calling the DescribeStacks operation (reached max retries: 2): Rate exceeded\n",
			code:    "ThrottlingException",
			op:      "DescribeStacks",
			message: "Rate exceeded",
			ok:      true,
		},
		{
			name:    "multi line message",
			stderr:  "An error occurred (ValidationError) when calling the CreateStack operation: Template format error:\nunsupported structure.\n",
			code:    "ValidationError",
			op:      "CreateStack",
			message: "Template format error:\nunsupported structure.",
			ok:      true,
		},
		{
			name:   "usage error",
			stderr: "aws: error: the following arguments are required: --bucket",
		},
		{name: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, op, message, ok := ParseError(tt.stderr)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.op, op)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestOperationToCommand(t *testing.T) {
	tests := map[string]string{
		"ListObjectsV2":       "list-objects-v2",
		"DescribeDBInstances": "describe-db-instances",
		"GetCallerIdentity":   "get-caller-identity",
		"AssumeRoleWithSAML":  "assume-role-with-saml",
		"GetObjectACL":        "get-object-acl",
		"ListBuckets":         "list-buckets",
		"":                    "",
	}

	for in, want := range tests {
		assert.Equal(t, want, OperationToCommand(in), in)
	}
}
