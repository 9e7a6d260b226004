// Package github converts go-github errors into *svcerr.ServiceError so
// GitHub API failures can be selected with the same criteria as any other
// service error.
//
// The envelope is filled as follows:
//
//   - Error.Code: the first field error's code (e.g. "already_exists"), else
//     the HTTP status text without spaces (e.g. "NotFound"). Primary rate
//     limits use RateLimitExceeded and secondary limits SecondaryRateLimit.
//   - Error.Message: the API message.
//   - ResponseMetadata: HTTP status and the X-GitHub-Request-Id header.
//   - OperationName: "<METHOD> <path>", e.g. "GET /repos/o/r/issues/1".
package github

import (
	"errors"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v67/github"

	"github.com/jmgilman/go/svcerr"
)

// Codes used for GitHub rate limiting.
const (
	CodeRateLimitExceeded  = "RateLimitExceeded"
	CodeSecondaryRateLimit = "SecondaryRateLimit"
)

// HeaderRequestID carries GitHub's request id.
const HeaderRequestID = "X-GitHub-Request-Id"

// KeyDocumentationURL holds the API's documentation link under Error.
const KeyDocumentationURL = "DocumentationURL"

// FromError builds a *svcerr.ServiceError from a go-github error. It returns
// false for errors that carry no API response, such as transport failures.
func FromError(err error) (*svcerr.ServiceError, bool) {
	if err == nil {
		return nil, false
	}

	var existing *svcerr.ServiceError
	if errors.As(err, &existing) {
		return existing, true
	}

	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		respErr  *gh.ErrorResponse
	)
	switch {
	case errors.As(err, &rateErr):
		return build(err, rateErr.Response, CodeRateLimitExceeded, rateErr.Message, ""), true
	case errors.As(err, &abuseErr):
		return build(err, abuseErr.Response, CodeSecondaryRateLimit, abuseErr.Message, ""), true
	case errors.As(err, &respErr):
		return build(err, respErr.Response, responseCode(respErr), respErr.Message, respErr.DocumentationURL), true
	}
	return nil, false
}

// Wrap returns the *svcerr.ServiceError for err, or err itself when it is not
// an API error.
func Wrap(err error) error {
	if se, ok := FromError(err); ok {
		return se
	}
	return err
}

func responseCode(r *gh.ErrorResponse) string {
	for _, fe := range r.Errors {
		if fe.Code != "" && fe.Code != "custom" {
			return fe.Code
		}
	}
	if r.Response == nil {
		return ""
	}
	return strings.ReplaceAll(http.StatusText(r.Response.StatusCode), " ", "")
}

func build(cause error, resp *http.Response, code, message, docURL string) *svcerr.ServiceError {
	errBody := make(map[string]any, 4)
	if code != "" {
		errBody[svcerr.KeyCode] = code
	}
	if message != "" {
		errBody[svcerr.KeyMessage] = message
	}
	if docURL != "" {
		errBody[KeyDocumentationURL] = docURL
	}

	response := svcerr.Response{svcerr.KeyError: errBody}
	if resp == nil {
		return svcerr.Wrap(cause, response, "")
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		errBody[svcerr.KeyType] = "Receiver"
	} else if resp.StatusCode >= http.StatusBadRequest {
		errBody[svcerr.KeyType] = "Sender"
	}

	meta := map[string]any{svcerr.KeyHTTPStatusCode: resp.StatusCode}
	if id := resp.Header.Get(HeaderRequestID); id != "" {
		meta[svcerr.KeyRequestID] = id
	}
	response[svcerr.KeyResponseMetadata] = meta

	return svcerr.Wrap(cause, response, operation(resp))
}

func operation(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.Method + " " + resp.Request.URL.Path
}
