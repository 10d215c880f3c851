package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"google.golang.org/api/googleapi"
)

// Error kinds for failures originating in the remote Google services.
var (
	ErrUnavailable = errors.New("upstream unavailable")
	ErrRejected    = errors.New("upstream rejected request")
)

// Error is a remote service failure tagged with its kind. Code and Message
// carry the remote status and message when the service answered at all.
type Error struct {
	Kind    error
	Op      string
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Code != 0 && e.Message != "":
		return fmt.Sprintf("%v: %v (%v %v)", e.Op, e.Kind, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%v: %v (%v)", e.Op, e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v (%v)", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%v: %v", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Classify tags err with ErrUnavailable or ErrRejected. A nil err returns nil
// and an already classified error is returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		kind := ErrRejected
		if gerr.Code >= 500 || gerr.Code == http.StatusTooManyRequests {
			kind = ErrUnavailable
		}

		return &Error{
			Kind:    kind,
			Op:      op,
			Code:    gerr.Code,
			Message: gerr.Message,
			Err:     err,
		}
	}

	var nerr net.Error
	var uerr *url.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &nerr),
		errors.As(err, &uerr):
		return &Error{Kind: ErrUnavailable, Op: op, Err: err}

	default:
		// answered, but not with anything the client library could decode
		return &Error{Kind: ErrRejected, Op: op, Err: err}
	}
}

// Rejected reports a malformed or unexpected response from the remote service.
func Rejected(op string, format string, args ...any) error {
	return &Error{
		Kind:    ErrRejected,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// StatusCode maps an error to the HTTP status returned by the façade.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	if e.Kind == ErrRejected && e.Code >= 400 && e.Code < 500 {
		return e.Code
	}

	return http.StatusBadGateway
}
