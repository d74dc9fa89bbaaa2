package database

import "fmt"

// StoreError wraps failures from the item store so callers can tell
// persistence problems apart from delivery or API failures.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("database %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
