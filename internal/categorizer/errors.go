package categorizer

import "fmt"

// TransportError represents a classification call that never produced a
// usable response: network failure, timeout, or authentication.
type TransportError struct {
	Batch int
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("classification transport failure for batch %d: %v", e.Batch, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError represents a classification response that could
// not be parsed into the expected list of {id, category} pairs.
type MalformedResponseError struct {
	Batch int
	Raw   string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed classification response for batch %d: %v", e.Batch, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
