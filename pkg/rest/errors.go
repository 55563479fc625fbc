package rest

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-console/pkg/resource"
)

var ErrUnauthorized = errors.New("rest: unauthorized")

// TransportError means no usable HTTP response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rest: %s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response, a 2xx response whose envelope reports
// success=false, or a body that cannot be read as an envelope.
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("rest: server error %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("rest: server error %d: %s", e.Status, msg)
}

func (e *ServerError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return resource.ErrNotFound
	default:
		return nil
	}
}

// IsTransport reports whether err came from the network rather than the
// backend.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}
