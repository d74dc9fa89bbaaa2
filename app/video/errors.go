package video

import "fmt"

// APIError wraps YouTube Data API failures so the top-level handler can
// distinguish them from store and webhook failures.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube %s failed: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
