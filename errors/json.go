package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat JSON form of an error.
//
// The wrapped chain is intentionally excluded; it may carry transport details
// such as request URLs or raw response bodies.
type ErrorResponse struct {
	// Code is the error code identifying the type of error.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Classification indicates whether the error is retryable or permanent.
	Classification string `json:"classification"`

	// Context contains optional metadata about the error.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse. Returns nil if err is nil.
//
// Errors that carry no Error use CodeUnknown, ClassificationPermanent and
// err.Error() as the message.
//
// Example:
//
//	resp := errors.ToJSON(svcerr.Convert(err))
//	json.NewEncoder(w).Encode(resp)
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	message := err.Error()
	var context map[string]interface{}

	var classified Error
	if As(err, &classified) {
		message = classified.Message()
		context = classified.Context()
	}

	return &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        message,
		Classification: string(GetClassification(err)),
		Context:        context,
	}
}

// MarshalJSON implements json.Marshaler.
func (e *classifiedError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, Wrap(err, CodeInternal, "failed to marshal error response")
	}
	return data, nil
}
