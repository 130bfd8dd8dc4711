package core

import "fmt"

// NotFoundError: no career/season/fixture/player/match-session with the
// given identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// InvalidStateError: operation incompatible with the current entity status.
type InvalidStateError struct {
	Entity string
	State  string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s in state %s: %s", e.Entity, e.State, e.Reason)
}

func NewInvalidStateError(entity, state, reason string) error {
	return &InvalidStateError{Entity: entity, State: state, Reason: reason}
}

func IsInvalidState(err error) bool {
	_, ok := err.(*InvalidStateError)
	return ok
}

// ValidationError: input violates a domain rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationFailure(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// CapacityError: squad full, overseas limit, per-user career limit.
type CapacityError struct {
	Resource string
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s capacity exceeded (limit %d)", e.Resource, e.Limit)
}

func NewCapacityError(resource string, limit int) error {
	return &CapacityError{Resource: resource, Limit: limit}
}

func IsCapacityExceeded(err error) bool {
	_, ok := err.(*CapacityError)
	return ok
}

// AffordabilityError: bid above max-bid-possible.
type AffordabilityError struct {
	Bid            int64
	MaxBidPossible int64
}

func (e *AffordabilityError) Error() string {
	return fmt.Sprintf("bid %d exceeds max bid possible %d", e.Bid, e.MaxBidPossible)
}

func NewAffordabilityError(bid, maxBid int64) error {
	return &AffordabilityError{Bid: bid, MaxBidPossible: maxBid}
}

func IsAffordabilityFailure(err error) bool {
	_, ok := err.(*AffordabilityError)
	return ok
}

// TransientRetryableError: database deadlock or serialisation conflict; the
// caller may retry the entire request.
type TransientRetryableError struct {
	Cause error
}

func (e *TransientRetryableError) Error() string {
	return fmt.Sprintf("transient failure, retry: %v", e.Cause)
}

func (e *TransientRetryableError) Unwrap() error { return e.Cause }

func NewTransientRetryableError(cause error) error {
	return &TransientRetryableError{Cause: cause}
}

func IsTransientRetryable(err error) bool {
	_, ok := err.(*TransientRetryableError)
	return ok
}

// InternalError: invariant violation; log and surface as opaque to the client.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }

func NewInternalError(cause error) error {
	return &InternalError{Cause: cause}
}

func IsInternal(err error) bool {
	_, ok := err.(*InternalError)
	return ok
}
