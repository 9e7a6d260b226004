package svcerr

import (
	"net/http"

	"github.com/jmgilman/go/svcerr/errors"
)

// retryableCodes lists service error codes that describe transient failures.
var retryableCodes = map[string]struct{}{
	"Throttling":                             {},
	"ThrottlingException":                    {},
	"ThrottledException":                     {},
	"RequestThrottled":                       {},
	"RequestThrottledException":              {},
	"TooManyRequestsException":               {},
	"ProvisionedThroughputExceededException": {},
	"TransactionInProgressException":         {},
	"RequestLimitExceeded":                   {},
	"BandwidthLimitExceeded":                 {},
	"LimitExceededException":                 {},
	"SlowDown":                               {},
	"PriorRequestNotComplete":                {},
	"EC2ThrottledException":                  {},
	"RequestTimeout":                         {},
	"RequestTimeoutException":                {},
	"InternalError":                          {},
	"InternalFailure":                        {},
	"ServiceUnavailable":                     {},
	"ServiceUnavailableException":            {},
	"SecondaryRateLimit":                     {},
	"RateLimitExceeded":                      {},
}

// IsRetryableCode reports whether code names a transient service failure.
func IsRetryableCode(code string) bool {
	_, ok := retryableCodes[code]
	return ok
}

// Classification classifies err. Service errors are retryable when their
// code is a known transient code or their HTTP status is 429 or 5xx. Other
// errors keep the classification they carry (permanent by default).
func Classification(err error) errors.ErrorClassification {
	se, ok := asServiceError(err)
	if !ok {
		return errors.GetClassification(err)
	}

	info := se.info()
	if IsRetryableCode(info.Code) ||
		info.HTTPStatusCode == http.StatusTooManyRequests ||
		info.HTTPStatusCode >= http.StatusInternalServerError {
		return errors.ClassificationRetryable
	}
	return errors.ClassificationPermanent
}

// statusCategory maps an HTTP status onto the errors taxonomy.
func statusCategory(status int) errors.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return errors.CodeNotFound
	case http.StatusUnauthorized:
		return errors.CodeUnauthorized
	case http.StatusForbidden:
		return errors.CodeForbidden
	case http.StatusConflict:
		return errors.CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.CodeInvalidInput
	case http.StatusTooManyRequests:
		return errors.CodeRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return errors.CodeTimeout
	}
	if status >= http.StatusInternalServerError {
		return errors.CodeUnavailable
	}
	return errors.CodeUnknown
}

// Convert maps err onto the errors taxonomy so it can be logged or
// serialized with errors.ToJSON. The result wraps err.
//
// For service errors the code is derived from the HTTP status, the
// classification from Classification, and the context carries the service
// code, operation, HTTP status and request id. An errors.Error is returned
// as is. Other errors are wrapped: an errors.Error deeper in the chain lends
// its code and classification, and anything else becomes CodeUnknown and
// permanent.
// Returns nil if err is nil.
func Convert(err error) errors.Error {
	if err == nil {
		return nil
	}

	se, ok := asServiceError(err)
	if !ok {
		if classified, ok := err.(errors.Error); ok {
			return classified
		}
		return errors.Wrap(err, errors.GetCode(err), err.Error())
	}

	info := se.info()
	message := info.Message
	if message == "" {
		message = se.Error()
	}

	converted := errors.WrapWithContext(err, statusCategory(info.HTTPStatusCode), message, map[string]interface{}{
		"service_code":     info.Code,
		"operation":        info.OperationName,
		"http_status_code": info.HTTPStatusCode,
		"request_id":       info.RequestID,
	})
	return errors.WithClassification(converted, Classification(err))
}
