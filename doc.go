// Package svcerr classifies errors returned by cloud-service clients.
//
// A service error pairs a structured response envelope (error code, message,
// HTTP status, request id) with the name of the operation that failed. svcerr
// lets call sites discriminate on those fields without destructuring the
// envelope by hand:
//
//	"treat this as handled only if its code is NoSuchBucket or NoSuchKey and
//	 it came from GetObject"
//
// The package never calls a service and never retries. It only inspects
// errors a client has already returned.
//
// # Extracting
//
// Extract projects the first *ServiceError in an error chain into an
// ErrorInfo. Missing envelope keys leave fields empty; an error chain without
// a *ServiceError is a TYPE_MISMATCH error, not an empty record.
//
//	info, err := svcerr.Extract(err)
//
// # Matching
//
// Matches tests an error against criteria. At least one code is required;
// operations are optional and default to "any". AllCodes and AllOperations
// are wildcards.
//
//	ok, err := svcerr.Matches(err,
//	    svcerr.Code("NoSuchBucket", "NoSuchKey"),
//	    svcerr.Operation("GetObject"),
//	)
//
// # Selecting
//
// A Selector is a handling clause. Given the error being handled it either
// captures it, returning a *CaughtError carrying the original error and its
// ErrorInfo, or declines, leaving the caller to propagate the error. Catch
// builds selectors from criteria, CatchFunc from a Predicate, and Exc from a
// single code name. Non-service errors are declined, so clauses for service
// errors can sit next to handling for other failures.
//
//	if caught, serr := svcerr.Exc("RegionDisabled").Select(err); serr != nil {
//	    return serr
//	} else if caught != nil {
//	    log.Printf("region disabled for %s", caught.OperationName())
//	    return nil
//	}
//	return err
//
// Handle and Dispatcher chain clauses like the handlers of a try statement:
//
//	return svcerr.Handle(err,
//	    svcerr.On(svcerr.Exc("NoSuchBucket"), createBucket),
//	    svcerr.On(svcerr.CatchFunc(svcerr.StatusCode(403)), reportDenied),
//	)
//
// # Providers
//
// The providers packages turn client errors into *ServiceError:
// providers/sdk for aws-sdk-go-v2, providers/cli for the aws command line
// and providers/github for go-github.
package svcerr
