package svcerr

// Selector decides whether a handling clause captures the error currently
// being handled.
//
// Select returns:
//
//   - (nil, ErrNoActiveError) if err is nil;
//   - (*CaughtError, nil) if the clause captures err;
//   - (nil, nil) if the clause declines, in which case the caller keeps
//     propagating err;
//   - (nil, ErrNoCodes) if a criteria selector without codes is asked about
//     a service error.
//
// Selectors hold no mutable state and are safe for concurrent use.
type Selector interface {
	Select(err error) (*CaughtError, error)
}

// Catch returns a Selector that captures service errors satisfying criteria,
// as defined by Matches. Errors that carry no *ServiceError are declined
// rather than reported, so a chain of clauses can mix service errors with
// other failures.
//
// Example:
//
//	caught, serr := svcerr.Catch(svcerr.Code("NoSuchBucket"), svcerr.Operation("GetObject")).Select(err)
//	switch {
//	case serr != nil:
//	    return serr
//	case caught != nil:
//	    log.Printf("bucket missing (%s)", caught.RequestID())
//	    return nil
//	}
//	return err
func Catch(criteria ...Criterion) Selector {
	return &criteriaSelector{criteria: compile(criteria)}
}

// CatchFunc returns a Selector that captures service errors for which p
// returns true. p is never called for errors that carry no *ServiceError.
// A nil p yields a selector that always fails with ErrNilPredicate.
func CatchFunc(p Predicate) Selector {
	return predicateSelector(p)
}

type criteriaSelector struct {
	criteria *criteria
}

func (s *criteriaSelector) Select(err error) (*CaughtError, error) {
	if err == nil {
		return nil, ErrNoActiveError
	}

	se, ok := asServiceError(err)
	if !ok {
		return nil, nil
	}

	matched, merr := se.matches(s.criteria)
	if merr != nil {
		return nil, merr
	}
	if !matched {
		return nil, nil
	}
	return newCaughtError(err, se), nil
}

type predicateSelector Predicate

func (p predicateSelector) Select(err error) (*CaughtError, error) {
	if err == nil {
		return nil, ErrNoActiveError
	}
	if p == nil {
		return nil, ErrNilPredicate
	}

	se, ok := asServiceError(err)
	if !ok || !p(se) {
		return nil, nil
	}
	return newCaughtError(err, se), nil
}

// CaughtError is an error captured by a Selector. It carries the original
// error unchanged together with the ErrorInfo extracted when it was caught.
//
// The accessors prefer values the original error already provides: if Err
// has its own Code() string method, Code returns that instead of the
// envelope's code. The same holds for Message, HTTPStatusCode,
// OperationName and RequestID.
type CaughtError struct {
	// Err is the error that was being handled.
	Err error

	// Info is the envelope projection of the matched *ServiceError.
	Info ErrorInfo

	service *ServiceError
}

func newCaughtError(err error, se *ServiceError) *CaughtError {
	return &CaughtError{
		Err:     err,
		Info:    se.info(),
		service: se,
	}
}

// Error returns the original error's message.
func (e *CaughtError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the original error.
func (e *CaughtError) Unwrap() error {
	return e.Err
}

// ServiceError returns the *ServiceError the selector matched against.
func (e *CaughtError) ServiceError() *ServiceError {
	return e.service
}

// Code returns the error code.
func (e *CaughtError) Code() string {
	if v, ok := e.Err.(interface{ Code() string }); ok {
		return v.Code()
	}
	return e.Info.Code
}

// Message returns the error message from the envelope.
func (e *CaughtError) Message() string {
	if v, ok := e.Err.(interface{ Message() string }); ok {
		return v.Message()
	}
	return e.Info.Message
}

// HTTPStatusCode returns the HTTP status of the failed response, or 0.
func (e *CaughtError) HTTPStatusCode() int {
	if v, ok := e.Err.(interface{ HTTPStatusCode() int }); ok {
		return v.HTTPStatusCode()
	}
	return e.Info.HTTPStatusCode
}

// OperationName returns the operation that failed.
func (e *CaughtError) OperationName() string {
	if v, ok := e.Err.(interface{ OperationName() string }); ok {
		return v.OperationName()
	}
	return e.Info.OperationName
}

// RequestID returns the service request id, or "".
func (e *CaughtError) RequestID() string {
	if v, ok := e.Err.(interface{ RequestID() string }); ok {
		return v.RequestID()
	}
	return e.Info.RequestID
}
