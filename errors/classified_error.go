package errors

import "fmt"

// classifiedError is the concrete implementation of Error.
// It is private to enforce construction through package functions.
type classifiedError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error returns "[CODE] message", or "[CODE] message: cause" when wrapping.
func (e *classifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *classifiedError) Code() ErrorCode {
	return e.code
}

func (e *classifiedError) Classification() ErrorClassification {
	return e.classification
}

func (e *classifiedError) Message() string {
	return e.message
}

// Context returns a copy of the context map, or nil if none was attached.
func (e *classifiedError) Context() map[string]interface{} {
	return copyContext(e.context)
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

func copyContext(ctx map[string]interface{}) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	out := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}
