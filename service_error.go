package svcerr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope keys. The layout follows the structured error responses returned
// by AWS service clients.
const (
	KeyError            = "Error"
	KeyCode             = "Code"
	KeyMessage          = "Message"
	KeyType             = "Type"
	KeyResponseMetadata = "ResponseMetadata"
	KeyHTTPStatusCode   = "HTTPStatusCode"
	KeyRequestID        = "RequestId"
)

// Response is the structured error envelope returned by a service call:
//
//	{
//	    "Error":            {"Code": "NoSuchBucket", "Message": "..."},
//	    "ResponseMetadata": {"HTTPStatusCode": 404, "RequestId": "..."},
//	}
//
// Every key is optional. A Response is treated as read-only once it is
// attached to a ServiceError.
type Response map[string]any

// ServiceError is an error returned by a remote service operation. It pairs
// the response envelope with the name of the operation that produced it.
//
// Construct one with New or Wrap, or convert a client error with one of the
// providers.
type ServiceError struct {
	// Response is the error envelope.
	Response Response

	// OperationName is the remote operation that failed, e.g. "GetObject".
	OperationName string

	cause error
}

// New returns a ServiceError for the given envelope and operation.
func New(response Response, operationName string) *ServiceError {
	return &ServiceError{
		Response:      response,
		OperationName: operationName,
	}
}

// Wrap returns a ServiceError that keeps cause reachable through Unwrap.
// Providers use it so callers can still reach the client's own error types.
func Wrap(cause error, response Response, operationName string) *ServiceError {
	return &ServiceError{
		Response:      response,
		OperationName: operationName,
		cause:         cause,
	}
}

// Error renders the error the way service clients print it:
//
//	An error occurred (NoSuchBucket) when calling the GetObject operation: The specified bucket does not exist
func (e *ServiceError) Error() string {
	code := lookupString(e.Response, KeyError, KeyCode)
	if code == "" {
		code = "Unknown"
	}
	message := lookupString(e.Response, KeyError, KeyMessage)
	if message == "" {
		message = "Unknown"
	}
	return fmt.Sprintf("An error occurred (%s) when calling the %s operation: %s", code, e.OperationName, message)
}

// Unwrap returns the error this ServiceError was converted from, if any.
func (e *ServiceError) Unwrap() error {
	return e.cause
}

type serviceErrorJSON struct {
	OperationName string   `json:"operation_name"`
	Response      Response `json:"response"`
}

// MarshalJSON encodes the operation name and envelope. The cause is not encoded.
func (e *ServiceError) MarshalJSON() ([]byte, error) {
	return json.Marshal(serviceErrorJSON{
		OperationName: e.OperationName,
		Response:      e.Response,
	})
}

// UnmarshalJSON decodes the form produced by MarshalJSON. Numbers are kept as
// json.Number so status codes survive without float conversion.
func (e *ServiceError) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v serviceErrorJSON
	if err := dec.Decode(&v); err != nil {
		return err
	}

	e.OperationName = v.OperationName
	e.Response = v.Response
	e.cause = nil
	return nil
}
