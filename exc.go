package svcerr

// Exc returns a Selector for a single error code. It is shorthand for
// Catch(Code(code)) and reads naturally as a dispatch clause:
//
//	err = svcerr.Handle(err,
//	    svcerr.On(svcerr.Exc("NoSuchBucket"), createBucket),
//	    svcerr.On(svcerr.Exc("AccessDenied"), reportDenied),
//	)
func Exc(code string) Selector {
	return Catch(Code(code))
}
