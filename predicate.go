package svcerr

// Predicate decides whether a service error should be captured. It is used
// with CatchFunc when code and operation criteria are not expressive enough.
type Predicate func(*ServiceError) bool

// Matching adapts criteria into a Predicate. Criteria that would make
// Matches fail (no codes) never match.
func Matching(criteria ...Criterion) Predicate {
	c := compile(criteria)
	return func(se *ServiceError) bool {
		ok, err := se.matches(c)
		return err == nil && ok
	}
}

// And returns a Predicate that matches only if every predicate matches.
// It short-circuits on the first miss.
func And(ps ...Predicate) Predicate {
	return func(se *ServiceError) bool {
		for _, p := range ps {
			if !p(se) {
				return false
			}
		}
		return true
	}
}

// Or returns a Predicate that matches if any predicate matches.
func Or(ps ...Predicate) Predicate {
	return func(se *ServiceError) bool {
		for _, p := range ps {
			if p(se) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(se *ServiceError) bool {
		return !p(se)
	}
}

// StatusCode returns a Predicate matching any of the given HTTP status codes.
func StatusCode(codes ...int) Predicate {
	return func(se *ServiceError) bool {
		status := lookupInt(se.Response, KeyResponseMetadata, KeyHTTPStatusCode)
		for _, code := range codes {
			if status == code {
				return true
			}
		}
		return false
	}
}
