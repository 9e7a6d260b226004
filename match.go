package svcerr

// Criterion narrows the service errors a match accepts. Build criteria with
// Code, Operation, AllCodes and AllOperations.
type Criterion interface {
	apply(c *criteria)
}

type criteria struct {
	codes        map[string]struct{}
	operations   map[string]struct{}
	anyCode      bool
	anyOperation bool
}

type codeCriterion []string

func (cc codeCriterion) apply(c *criteria) {
	for _, code := range cc {
		c.codes[code] = struct{}{}
	}
}

type operationCriterion []string

func (oc operationCriterion) apply(c *criteria) {
	for _, op := range oc {
		c.operations[op] = struct{}{}
	}
}

type wildcard int

const (
	wildcardCodes wildcard = iota + 1
	wildcardOperations
)

func (w wildcard) apply(c *criteria) {
	switch w {
	case wildcardCodes:
		c.anyCode = true
	case wildcardOperations:
		c.anyOperation = true
	}
}

var (
	// AllCodes matches any error code, including an absent one.
	AllCodes Criterion = wildcardCodes

	// AllOperations matches any operation name.
	AllOperations Criterion = wildcardOperations
)

// Code accepts errors whose code is one of codes. Multiple Code criteria
// are unioned.
func Code(codes ...string) Criterion {
	return codeCriterion(codes)
}

// Operation accepts errors raised by one of the named operations. Multiple
// Operation criteria are unioned. Without any Operation criterion every
// operation is accepted.
func Operation(names ...string) Criterion {
	return operationCriterion(names)
}

func compile(cs []Criterion) *criteria {
	c := &criteria{
		codes:      make(map[string]struct{}),
		operations: make(map[string]struct{}),
	}
	for _, criterion := range cs {
		if criterion != nil {
			criterion.apply(c)
		}
	}
	return c
}

func (c *criteria) hasCodes() bool {
	return c.anyCode || len(c.codes) > 0
}

func (c *criteria) match(code, operation string) bool {
	codeOK := c.anyCode
	if !codeOK && code != "" {
		_, codeOK = c.codes[code]
	}

	opOK := c.anyOperation || len(c.operations) == 0
	if !opOK {
		_, opOK = c.operations[operation]
	}

	return codeOK && opOK
}

// Matches reports whether the first *ServiceError in err's chain satisfies
// criteria: its code is accepted and, if operations were given, its
// operation is accepted too.
//
// At least one code (or AllCodes) is required; otherwise Matches returns
// ErrNoCodes, even when operations were supplied. If err carries no
// *ServiceError, Matches returns a TYPE_MISMATCH error.
//
// Example:
//
//	ok, err := svcerr.Matches(err, svcerr.Code("NoSuchBucket"), svcerr.Operation("GetObject"))
func Matches(err error, criteria ...Criterion) (bool, error) {
	se, ok := asServiceError(err)
	if !ok {
		return false, typeMismatch(err)
	}
	return se.matches(compile(criteria))
}

func (e *ServiceError) matches(c *criteria) (bool, error) {
	if !c.hasCodes() {
		return false, ErrNoCodes
	}
	return c.match(lookupString(e.Response, KeyError, KeyCode), e.OperationName), nil
}
