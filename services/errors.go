package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no billing matches the lookup.
	ErrNotFound = errors.New("merchant billing not found")

	// ErrInvalid is returned when a billing breaks a business rule.
	ErrInvalid = errors.New("invalid merchant billing")

	// ErrInvalidState is returned when a status transition is not allowed.
	ErrInvalidState = errors.New("invalid merchant billing state")
)

// BillingError wraps a failed service operation with the rule that failed.
type BillingError struct {
	Op     string
	Reason string
	Err    error
}

func (e *BillingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("billing: %s failed: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("billing: %s failed: %v", e.Op, e.Err)
}

func (e *BillingError) Unwrap() error {
	return e.Err
}

func invalid(op, reason string) error {
	return &BillingError{Op: op, Reason: reason, Err: ErrInvalid}
}
