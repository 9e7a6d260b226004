// Package svcerrtest builds service errors for tests, without a live
// service call.
package svcerrtest

import (
	"github.com/jmgilman/go/svcerr"
)

type config struct {
	httpStatusCode int
	requestID      string
	response       svcerr.Response
}

// Option customizes an error built by NewError.
type Option func(*config)

// WithHTTPStatusCode sets ResponseMetadata.HTTPStatusCode.
func WithHTTPStatusCode(status int) Option {
	return func(c *config) {
		c.httpStatusCode = status
	}
}

// WithRequestID sets ResponseMetadata.RequestId.
func WithRequestID(id string) Option {
	return func(c *config) {
		c.requestID = id
	}
}

// WithResponse starts from an existing envelope. The envelope is deep-copied;
// the caller's map is never modified.
func WithResponse(response svcerr.Response) Option {
	return func(c *config) {
		c.response = response
	}
}

// NewError returns a *svcerr.ServiceError carrying a minimal valid envelope
// for the given code, message and operation. Empty code or message leave the
// corresponding key unset.
//
// Example:
//
//	err := svcerrtest.NewError("NoSuchBucket", "The specified bucket does not exist", "GetObject",
//	    svcerrtest.WithHTTPStatusCode(404),
//	)
func NewError(code, message, operationName string, opts ...Option) *svcerr.ServiceError {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	response := copyMap(cfg.response)

	errBody := section(response, svcerr.KeyError)
	if code != "" {
		errBody[svcerr.KeyCode] = code
	}
	if message != "" {
		errBody[svcerr.KeyMessage] = message
	}

	if cfg.httpStatusCode != 0 || cfg.requestID != "" {
		meta := section(response, svcerr.KeyResponseMetadata)
		if cfg.httpStatusCode != 0 {
			meta[svcerr.KeyHTTPStatusCode] = cfg.httpStatusCode
		}
		if cfg.requestID != "" {
			meta[svcerr.KeyRequestID] = cfg.requestID
		}
	}

	return svcerr.New(response, operationName)
}

// section returns the nested map stored under key, creating it when absent
// or not a map. copyMap has already normalized string maps.
func section(response svcerr.Response, key string) map[string]any {
	if m, ok := response[key].(map[string]any); ok {
		return m
	}
	m := make(map[string]any)
	response[key] = m
	return m
}

func copyMap(src map[string]any) svcerr.Response {
	dst := make(svcerr.Response, len(src))
	for k, v := range src {
		dst[k] = copyValue(v)
	}
	return dst
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(copyMap(t))
	case svcerr.Response:
		return map[string]any(copyMap(t))
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	}
	return v
}
