package flomo

import (
	"errors"
	"fmt"
)

var (
	ErrEndpointMissing   = errors.New("flomo api url is not set")
	ErrEndpointMalformed = errors.New("flomo api url is malformed")

	ErrEmptyContent = errors.New("content must not be empty")
)

// TransportError is a failure to get any HTTP response from Flomo.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is a non-2xx reply from Flomo.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("request failed with status %s", e.Status)
}

// ParseError is a 2xx reply whose body is not valid JSON.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsRemote reports whether err was caused by the reply Flomo sent back,
// as opposed to something that failed on our side.
func IsRemote(err error) bool {
	var (
		remoteErr *RemoteError
		parseErr  *ParseError
	)

	return errors.As(err, &remoteErr) || errors.As(err, &parseErr)
}
