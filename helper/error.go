package helper

import "fmt"

// NewError wraps an error with the context in which it occurred.
// The resulting error unwraps to the original error.
func NewError(context string, err error) error {
	return fmt.Errorf("error in %v: %w", context, err)
}
