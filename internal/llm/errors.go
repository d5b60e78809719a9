package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote call.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindStatus
	KindEmptyResponse
	KindParse
	KindServer
	KindMalformed
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrTransport         = errors.New("connection failed")
	ErrStatus            = errors.New("API request failed")
	ErrEmptyResponse     = errors.New("empty response from server")
	ErrParse             = errors.New("failed to parse response")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("invalid response structure from AI service")
)

// Error is returned by every Client for a call that did not produce a reply.
type Error struct {
	Kind       Kind
	StatusCode int    // KindStatus
	Body       string // KindStatus
	Message    string // KindServer: the "error" field
	Details    string // KindServer: the optional "details" field
	Err        error  // underlying cause, if any
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindTransport:
		return ErrTransport
	case KindStatus:
		return ErrStatus
	case KindEmptyResponse:
		return ErrEmptyResponse
	case KindParse:
		return ErrParse
	case KindServer:
		return ErrServer
	default:
		return ErrMalformedResponse
	}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
	case KindStatus:
		return fmt.Sprintf("%s: %d - %s", ErrStatus, e.StatusCode, e.Body)
	case KindParse:
		return fmt.Sprintf("%s: %v", ErrParse, e.Err)
	case KindServer:
		return fmt.Sprintf("%s: %s - %s", ErrServer, e.Message, e.Details)
	default:
		return e.sentinel().Error()
	}
}

// Unwrap exposes the kind sentinel and the cause. A parse failure is also a
// malformed response.
func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Kind == KindParse {
		errs = append(errs, ErrMalformedResponse)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// String names the kind for logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindEmptyResponse:
		return "empty_response"
	case KindParse:
		return "parse"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
