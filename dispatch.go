package svcerr

import (
	"log/slog"
)

// Handler handles an error captured by a clause. Its return value replaces
// the original error: return nil to recover, or an error to fail.
type Handler func(*CaughtError) error

// Clause pairs a Selector with the Handler to run when it captures an error.
type Clause struct {
	Selector Selector
	Handler  Handler
}

// On returns a Clause.
func On(sel Selector, h Handler) Clause {
	return Clause{Selector: sel, Handler: h}
}

// DispatchOption configures a Dispatcher.
type DispatchOption func(*Dispatcher)

// WithLogger sets the logger used to record clause decisions at debug level.
func WithLogger(logger *slog.Logger) DispatchOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher evaluates an ordered list of clauses against an error, the way
// a chain of exception handlers would.
//
// A Dispatcher is immutable once built with On and may be shared between
// goroutines.
type Dispatcher struct {
	clauses []Clause
	logger  *slog.Logger
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(opts ...DispatchOption) *Dispatcher {
	d := &Dispatcher{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// On returns a copy of d with a clause appended.
func (d *Dispatcher) On(sel Selector, h Handler) *Dispatcher {
	clauses := make([]Clause, len(d.clauses), len(d.clauses)+1)
	copy(clauses, d.clauses)
	return &Dispatcher{
		clauses: append(clauses, On(sel, h)),
		logger:  d.logger,
	}
}

// Handle runs the handler of the first clause that captures err and returns
// its result. If no clause captures err, err is returned unchanged.
//
// A nil err yields ErrNoActiveError. A selector usage error (for example a
// criteria selector built without codes) is returned as soon as it occurs.
func (d *Dispatcher) Handle(err error) error {
	if err == nil {
		return ErrNoActiveError
	}

	for i, clause := range d.clauses {
		caught, serr := clause.Selector.Select(err)
		if serr != nil {
			d.logger.Debug("selector failed", "clause", i, "error", serr)
			return serr
		}
		if caught == nil {
			continue
		}

		d.logger.Debug("error captured",
			"clause", i,
			"code", caught.Code(),
			"operation", caught.OperationName(),
			"http_status_code", caught.HTTPStatusCode(),
		)
		if clause.Handler == nil {
			return nil
		}
		return clause.Handler(caught)
	}

	d.logger.Debug("error not captured", "clauses", len(d.clauses), "error", err)
	return err
}

// Handle dispatches err over clauses with a one-off Dispatcher.
//
// Example:
//
//	if err := uploader.Put(ctx, key, body); err != nil {
//	    return svcerr.Handle(err,
//	        svcerr.On(svcerr.Catch(svcerr.Code("NoSuchBucket"), svcerr.Operation("PutObject")),
//	            func(e *svcerr.CaughtError) error {
//	                return createBucket(ctx)
//	            }),
//	    )
//	}
func Handle(err error, clauses ...Clause) error {
	d := &Dispatcher{
		clauses: clauses,
		logger:  slog.New(slog.DiscardHandler),
	}
	return d.Handle(err)
}
