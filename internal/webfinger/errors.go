package webfinger

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAuthority   = errors.New("invalid authority")
	ErrInvalidResource    = errors.New("invalid resource")
	ErrInvalidRel         = errors.New("invalid link relation type")
	ErrMissingHost        = errors.New("missing host")
	ErrInvalidQueryString = errors.New("invalid query string")
	ErrHTTPStatus         = errors.New("unexpected http status")
	ErrDecode             = errors.New("failed to decode response")
	ErrTransport          = errors.New("transport failure")
)

// StatusError is returned when a server answers with a status outside the 2xx range. Body holds
// whatever the server sent, which is never decoded as a JRD.
type StatusError struct {
	Code   int
	Status string
	Body   []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: %s", ErrHTTPStatus, e.Status)
	}
	return fmt.Sprintf("%s: %s: %s", ErrHTTPStatus, e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}
