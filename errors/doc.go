// Package errors provides the structured error taxonomy used across svcerr.
//
// Every failure raised by svcerr itself (as opposed to the service errors it
// classifies) is an Error carrying an ErrorCode, an ErrorClassification, a
// human-readable message and optional context metadata. The package stays
// compatible with the standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Codes raised by svcerr
//
//   - CodeUsage: a function was called outside its required context or with
//     insufficient arguments (for example a matcher with no error codes, or a
//     selector given a nil error).
//   - CodeTypeMismatch: a function that requires a service error was given
//     some other error.
//   - CodeInvalidConfig: a selector registry failed validation.
//   - CodeExecutionFailed: a provider command failed without a recognizable
//     service error on its output.
//
// Service errors converted with svcerr.Convert reuse the resource, permission,
// validation and infrastructure codes (CodeNotFound, CodeForbidden,
// CodeRateLimit, CodeUnavailable, ...).
//
// # Quick Start
//
//	err := errors.New(errors.CodeUsage, "no error codes provided")
//
//	if err := load(path); err != nil {
//	    return errors.Wrap(err, errors.CodeInvalidConfig, "failed to load selector registry")
//	}
//
//	err = errors.WithContext(err, "path", path)
//
//	if errors.GetCode(err) == errors.CodeTypeMismatch {
//	    // not a service error
//	}
//
// # Classification
//
// Errors are classified as retryable or permanent. The classification is a
// statement about the failure, not a retry policy: svcerr never retries.
// Wrapping preserves the classification of the wrapped Error, and
// WithClassification overrides it.
//
// # JSON
//
// ToJSON flattens any error into an ErrorResponse. The wrapped chain is left
// out so that transport details do not leak to API consumers.
package errors
