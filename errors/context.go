package errors

import stderrors "errors"

// WithContext returns a copy of err with one context field added.
// Existing fields are preserved.
//
// If err is not an Error it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidConfig, "duplicate selector %q", name)
//	err = errors.WithContext(err, "path", path)
func WithContext(err error, key string, value interface{}) Error {
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap returns a copy of err with the given context fields merged in.
// New fields override existing fields with the same key.
//
// If err is not an Error it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}

	base := toClassified(err)

	merged := make(map[string]interface{}, len(base.context)+len(ctx))
	for k, v := range base.context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &classifiedError{
		code:           base.code,
		classification: base.classification,
		message:        base.message,
		context:        merged,
		cause:          base.cause,
	}
}

// WithClassification returns a copy of err with the given classification.
//
// If err is not an Error it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithClassification(err error, classification ErrorClassification) Error {
	if err == nil {
		return nil
	}

	base := toClassified(err)
	return &classifiedError{
		code:           base.code,
		classification: classification,
		message:        base.message,
		context:        copyContext(base.context),
		cause:          base.cause,
	}
}

// toClassified returns the outermost Error in err's chain as a
// classifiedError, converting plain errors to CodeUnknown.
func toClassified(err error) *classifiedError {
	var classified Error
	if !stderrors.As(err, &classified) {
		return &classifiedError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}

	return &classifiedError{
		code:           classified.Code(),
		classification: classified.Classification(),
		message:        classified.Message(),
		context:        classified.Context(),
		cause:          classified.Unwrap(),
	}
}
