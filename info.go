package svcerr

// ErrorInfo is the fixed-shape projection of a service error envelope.
// Absent fields hold their zero value.
type ErrorInfo struct {
	Code           string
	Message        string
	HTTPStatusCode int
	OperationName  string
	RequestID      string

	// Response is the raw envelope the fields were read from.
	Response Response
}

// Extract reads the ErrorInfo of the first *ServiceError in err's chain.
//
// Missing or mistyped envelope keys never fail; they leave the field empty.
// If the chain holds no *ServiceError, Extract returns a TYPE_MISMATCH error
// wrapping ErrNotServiceError rather than an empty record.
//
// Example:
//
//	info, err := svcerr.Extract(err)
//	if err != nil {
//	    return err
//	}
//	log.Printf("%s failed with %s (%d)", info.OperationName, info.Code, info.HTTPStatusCode)
func Extract(err error) (ErrorInfo, error) {
	se, ok := asServiceError(err)
	if !ok {
		return ErrorInfo{}, typeMismatch(err)
	}
	return se.info(), nil
}

func (e *ServiceError) info() ErrorInfo {
	return ErrorInfo{
		Code:           lookupString(e.Response, KeyError, KeyCode),
		Message:        lookupString(e.Response, KeyError, KeyMessage),
		HTTPStatusCode: lookupInt(e.Response, KeyResponseMetadata, KeyHTTPStatusCode),
		OperationName:  e.OperationName,
		RequestID:      lookupString(e.Response, KeyResponseMetadata, KeyRequestID),
		Response:       e.Response,
	}
}
