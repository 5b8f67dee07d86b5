package advisor

import "errors"

var (
	// ErrUnavailable indicates the advisory endpoint is unreachable or
	// answered with a non-success status.
	ErrUnavailable = errors.New("advisory service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("advisory request timed out")

	// ErrBadResponse indicates the response body could not be decoded
	// or contained no completion.
	ErrBadResponse = errors.New("malformed advisory response")
)
