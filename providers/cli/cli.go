//nolint:contextcheck // Context is passed via Executor.WithContext() but linter cannot verify
package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/jmgilman/go/svcerr"
	"github.com/jmgilman/go/svcerr/errors"
	"github.com/jmgilman/go/svcerr/exec"
)

// Option configures the CLI provider.
type Option func(*CLIProvider) error

// CLIProvider runs operations through the aws command line client and turns
// its service failures into *svcerr.ServiceError.
type CLIProvider struct {
	aws     exec.Executor
	profile string
	region  string
	logger  *slog.Logger
}

// NewCLIProvider creates a provider using the aws CLI. Credentials and
// configuration come from the CLI's usual environment and profile files.
//
// Example:
//
//	provider, err := cli.NewCLIProvider(cli.WithRegion("us-east-1"))
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewCLIProvider(opts ...Option) (*CLIProvider, error) {
	provider := &CLIProvider{
		aws:    exec.NewWrapper(exec.New(exec.WithInheritEnv(), exec.WithDisableColors()), "aws"),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if err := opt(provider); err != nil {
			return nil, err
		}
	}

	// Verify aws is installed
	result, err := provider.aws.Run("--version")
	if err != nil {
		return nil, wrapInstallError(err, result)
	}
	provider.logger.Debug("aws CLI found", "version", strings.TrimSpace(result.Stdout))

	return provider, nil
}

// WithExecutor sets a custom executor for the CLI provider.
// This is primarily useful for testing with a mock executor.
func WithExecutor(executor exec.Executor) Option {
	return func(p *CLIProvider) error {
		if executor == nil {
			err := errors.New(errors.CodeInvalidInput, "executor cannot be nil")
			return errors.WithContext(err, "field", "executor")
		}
		p.aws = exec.NewWrapper(executor, "aws")
		return nil
	}
}

// WithProfile passes --profile to every call.
func WithProfile(profile string) Option {
	return func(p *CLIProvider) error {
		if profile == "" {
			err := errors.New(errors.CodeInvalidInput, "profile cannot be empty")
			return errors.WithContext(err, "field", "profile")
		}
		p.profile = profile
		return nil
	}
}

// WithRegion passes --region to every call.
func WithRegion(region string) Option {
	return func(p *CLIProvider) error {
		if region == "" {
			err := errors.New(errors.CodeInvalidInput, "region cannot be empty")
			return errors.WithContext(err, "field", "region")
		}
		p.region = region
		return nil
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *CLIProvider) error {
		if logger == nil {
			err := errors.New(errors.CodeInvalidInput, "logger cannot be nil")
			return errors.WithContext(err, "field", "logger")
		}
		p.logger = logger
		return nil
	}
}

// Call runs "aws <service> <operation> args... --output json" and returns the
// captured result. operation is the API name, e.g. "ListObjectsV2".
//
// A failure reported by the service is returned as a *svcerr.ServiceError
// wrapping the *exec.ExecError; any other failure is an EXECUTION_FAILED
// error.
func (c *CLIProvider) Call(ctx context.Context, service, operation string, args ...string) (*exec.Result, error) {
	full := []string{service, OperationToCommand(operation)}
	full = append(full, args...)
	if c.profile != "" {
		full = append(full, "--profile", c.profile)
	}
	if c.region != "" {
		full = append(full, "--region", c.region)
	}
	full = append(full, "--output", "json")

	result, err := c.aws.WithContext(ctx).Run(full...)
	if err != nil {
		return result, c.wrapCLIError(err, result, service, operation)
	}
	return result, nil
}

// CallJSON runs Call and decodes its JSON output into out. Empty output
// leaves out untouched.
func (c *CLIProvider) CallJSON(ctx context.Context, service, operation string, out any, args ...string) error {
	result, err := c.Call(ctx, service, operation, args...)
	if err != nil {
		return err
	}

	if strings.TrimSpace(result.Stdout) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(result.Stdout), out); err != nil {
		err := errors.Wrap(err, errors.CodeInvalidInput, "failed to parse aws CLI output")
		return errors.WithContext(err, "operation", operation)
	}
	return nil
}

// wrapCLIError converts a failed aws invocation.
func (c *CLIProvider) wrapCLIError(err error, result *exec.Result, service, operation string) error {
	stderr := ""
	if result != nil {
		stderr = result.Stderr
	}

	if code, op, message, ok := ParseError(stderr); ok {
		c.logger.Debug("aws CLI service error",
			"service", service,
			"operation", op,
			"code", code,
		)
		errBody := map[string]any{svcerr.KeyCode: code}
		if message != "" {
			errBody[svcerr.KeyMessage] = message
		}
		return svcerr.Wrap(err, svcerr.Response{svcerr.KeyError: errBody}, op)
	}

	c.logger.Debug("aws CLI failed", "service", service, "operation", operation, "error", err)

	message := strings.TrimSpace(stderr)
	if message == "" {
		message = "aws CLI command failed"
	}
	wrapped := errors.Wrap(err, errors.CodeExecutionFailed, message)
	wrapped = errors.WithContext(wrapped, "operation", operation)
	if result != nil {
		wrapped = errors.WithContext(wrapped, "exit_code", result.ExitCode)
	}
	return wrapped
}

// wrapInstallError wraps a failed "aws --version".
func wrapInstallError(err error, result *exec.Result) error {
	installErr := errors.Wrap(err, errors.CodeExecutionFailed, "aws CLI not available")
	installErr = errors.WithContext(installErr, "hint", "Install the AWS CLI and make sure it is on PATH")
	if result != nil && result.Stderr != "" {
		installErr = errors.WithContext(installErr, "stderr", result.Stderr)
	}
	return installErr
}

var serviceErrorPattern = regexp.MustCompile(
	`(?s)An error occurred \(([^)]*)\) when calling the (\w+) operation(?: \([^)]*\))?: ?(.*)`,
)

// ParseError extracts the code, operation and message from the aws CLI's
// error output:
//
//	An error occurred (NoSuchBucket) when calling the ListObjectsV2 operation: The specified bucket does not exist
//
// The "(reached max retries: N)" suffix that follows the operation name on
// throttled calls is skipped. ok is false when stderr holds no such line.
func ParseError(stderr string) (code, operation, message string, ok bool) {
	m := serviceErrorPattern.FindStringSubmatch(stderr)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], strings.TrimSpace(m[3]), true
}

// OperationToCommand converts an API operation name to the CLI command name:
// "ListObjectsV2" becomes "list-objects-v2" and "DescribeDBInstances" becomes
// "describe-db-instances".
func OperationToCommand(operation string) string {
	runes := []rune(operation)
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
