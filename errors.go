package svcerr

import (
	"github.com/jmgilman/go/svcerr/errors"
)

var (
	// ErrNoCodes is returned when a match is requested without any error code.
	// An operation name alone never selects a match.
	ErrNoCodes = errors.New(errors.CodeUsage, "no error codes provided")

	// ErrNoActiveError is returned when a selector is asked to decide on a nil
	// error: there is nothing being handled.
	ErrNoActiveError = errors.New(errors.CodeUsage, "selector must be used with a non-nil error")

	// ErrNilPredicate is returned by a selector built with CatchFunc(nil).
	ErrNilPredicate = errors.New(errors.CodeUsage, "predicate must not be nil")

	// ErrNotServiceError is wrapped by the type-mismatch error returned from
	// Extract and Matches when the error chain holds no *ServiceError.
	ErrNotServiceError = errors.New(errors.CodeTypeMismatch, "error is not a service error")
)

// typeMismatch reports that err carries no *ServiceError.
func typeMismatch(err error) error {
	return errors.Wrapf(ErrNotServiceError, errors.CodeTypeMismatch, "error is of type %T, not *svcerr.ServiceError", err)
}

// asServiceError returns the first *ServiceError in err's chain.
func asServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) && se != nil {
		return se, true
	}
	return nil, false
}
