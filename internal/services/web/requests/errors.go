package requests

import (
	"errors"
	"fmt"

	"github.com/louisbranch/lastro/internal/project"
)

// TransportError reports a catalog call that did not complete successfully:
// the connection failed, the response was not 2xx, or the body could not be
// decoded.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e == nil {
		return "catalog transport error"
	}
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d", e.Op, e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError reports a detail lookup for an identifier the catalog does
// not know.
type NotFoundError struct {
	ID project.ID
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e == nil {
		return "project not found"
	}
	return fmt.Sprintf("project %q not found", e.ID)
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsTransport reports whether err carries a TransportError.
func IsTransport(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}
