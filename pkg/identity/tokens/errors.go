package tokens

import "errors"

// ArgumentError reports invalid caller input. It is always returned before
// any request is sent and is never wrapped.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func newArgumentError(msg string) *ArgumentError {
	return &ArgumentError{Message: msg}
}

// IsArgumentError reports whether err is, or wraps, an *ArgumentError.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}
