package download

import "fmt"

// StatusError reports a non-success HTTP status. It is always returned
// before any byte is written to the destination.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download of %s failed with status code %d", e.URL, e.StatusCode)
}

// NetworkError reports a transport failure. Offset is the number of
// bytes successfully written before the failure.
type NetworkError struct {
	URL    string
	Offset int64
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error downloading %s after %d bytes: %v", e.URL, e.Offset, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IOError reports a destination filesystem failure. Offset is the number
// of bytes successfully written before the failure.
type IOError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error writing %s after %d bytes: %v", e.Path, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
