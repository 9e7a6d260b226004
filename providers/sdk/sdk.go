// Package sdk converts aws-sdk-go-v2 errors into *svcerr.ServiceError.
//
// SDK clients return an error chain of the form
//
//	*smithy.OperationError -> *awshttp.ResponseError -> smithy.APIError
//
// FromError flattens that chain into the response envelope svcerr inspects,
// keeping the original error as the cause:
//
//	out, err := client.GetObject(ctx, in)
//	if err != nil {
//	    return svcerr.Handle(sdk.Wrap(err),
//	        svcerr.On(svcerr.Exc("NoSuchKey"), func(*svcerr.CaughtError) error { return nil }),
//	    )
//	}
package sdk

import (
	"errors"
	"net/http"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/jmgilman/go/svcerr"
)

// Envelope values for Error.Type.
const (
	TypeSender   = "Sender"
	TypeReceiver = "Receiver"
)

// KeyHTTPHeaders holds the lower-cased response headers under ResponseMetadata.
const KeyHTTPHeaders = "HTTPHeaders"

// FromError builds a *svcerr.ServiceError from an SDK error chain. It returns
// false when err carries no smithy.APIError, e.g. for transport failures and
// cancellations. A chain that already holds a *svcerr.ServiceError yields it
// unchanged.
func FromError(err error) (*svcerr.ServiceError, bool) {
	if err == nil {
		return nil, false
	}

	var existing *svcerr.ServiceError
	if errors.As(err, &existing) {
		return existing, true
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return nil, false
	}

	response := svcerr.Response{
		svcerr.KeyError: errorSection(apiErr),
	}
	if meta := metadataSection(err); len(meta) > 0 {
		response[svcerr.KeyResponseMetadata] = meta
	}

	var opErr *smithy.OperationError
	operation := ""
	if errors.As(err, &opErr) {
		operation = opErr.OperationName
	}

	return svcerr.Wrap(err, response, operation), true
}

// Wrap returns the *svcerr.ServiceError for err, or err itself when it is not
// a service error.
func Wrap(err error) error {
	if se, ok := FromError(err); ok {
		return se
	}
	return err
}

func errorSection(apiErr smithy.APIError) map[string]any {
	section := make(map[string]any, 3)
	if code := apiErr.ErrorCode(); code != "" {
		section[svcerr.KeyCode] = code
	}
	if msg := apiErr.ErrorMessage(); msg != "" {
		section[svcerr.KeyMessage] = msg
	}
	switch apiErr.ErrorFault() {
	case smithy.FaultClient:
		section[svcerr.KeyType] = TypeSender
	case smithy.FaultServer:
		section[svcerr.KeyType] = TypeReceiver
	}
	return section
}

func metadataSection(err error) map[string]any {
	meta := make(map[string]any, 3)

	var awsErr *awshttp.ResponseError
	if errors.As(err, &awsErr) && awsErr.RequestID != "" {
		meta[svcerr.KeyRequestID] = awsErr.RequestID
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		if resp := httpResponse(respErr); resp != nil {
			meta[svcerr.KeyHTTPStatusCode] = resp.StatusCode
			if len(resp.Header) > 0 {
				meta[KeyHTTPHeaders] = headers(resp.Header)
			}
		}
	}

	return meta
}

func httpResponse(respErr *smithyhttp.ResponseError) *http.Response {
	if respErr.Response == nil {
		return nil
	}
	return respErr.Response.Response
}

func headers(h http.Header) map[string]any {
	out := make(map[string]any, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}
