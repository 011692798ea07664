package models

import "fmt"

// NotFoundError reports a missing article or comment
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

// ValidationError reports rejected input with a specific reason
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// AuthError reports a missing or failed authentication. The API surfaces it
// separately from validation failures so clients can prompt for sign-in.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// UpstreamError reports a failed feed fetch (network, timeout, non-2xx).
// It is always recovered before reaching a client.
type UpstreamError struct {
	Category string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream fetch for category '%s' failed: %v", e.Category, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed durable write. It is logged and
// swallowed; the in-memory state stays authoritative.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
