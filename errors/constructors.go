package errors

import (
	stderrors "errors"
	"fmt"
)

// New creates an Error with the given code and message.
// The classification is the code's default.
//
// Example:
//
//	var ErrNoCodes = errors.New(errors.CodeUsage, "no error codes provided")
func New(code ErrorCode, message string) Error {
	return &classifiedError{
		code:           code,
		classification: DefaultClassification(code),
		message:        message,
	}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. The wrapped error stays reachable
// through errors.Is and errors.As.
//
// If err is (or wraps) an Error, its classification is preserved; otherwise
// the code's default classification is used. Returns nil if err is nil.
//
// Example:
//
//	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
//	    return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode selector registry")
//	}
func Wrap(err error, code ErrorCode, message string) Error {
	if err == nil {
		return nil
	}

	classification := DefaultClassification(code)
	var classified Error
	if stderrors.As(err, &classified) {
		classification = classified.Classification()
	}

	return &classifiedError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches context metadata in one step.
// The context map is copied. Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, code, message).(*classifiedError)
	wrapped.context = copyContext(ctx)
	return wrapped
}
