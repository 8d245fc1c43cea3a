package voucher

import (
	"errors"
	"fmt"
)

// ErrSequenceAllocationFailed is returned when no sequence value could be reserved.
var ErrSequenceAllocationFailed = errors.New("voucher sequence allocation failed")

// SequenceAllocationFailedError reports the key and how many attempts were made.
// Cause is the last store error, kept for errors.Is/As.
type SequenceAllocationFailedError struct {
	Key      Key
	Attempts int
	Cause    error
}

func NewSequenceAllocationFailedError(key Key, attempts int, cause error) *SequenceAllocationFailedError {
	return &SequenceAllocationFailedError{Key: key, Attempts: attempts, Cause: cause}
}

func (e *SequenceAllocationFailedError) Error() string {
	msg := fmt.Sprintf("%s: key %s after %d attempt(s)", ErrSequenceAllocationFailed, e.Key, e.Attempts)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *SequenceAllocationFailedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrSequenceAllocationFailed}
	}
	return []error{ErrSequenceAllocationFailed, e.Cause}
}
