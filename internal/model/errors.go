package model

import (
	"errors"
	"fmt"
)

// Model error codes (E300-E309).
const (
	// ErrCodeRoleBound indicates a second registration of an exclusive role.
	ErrCodeRoleBound = "E300"

	// ErrCodeBadDescriptor indicates an out-of-domain descriptor value.
	ErrCodeBadDescriptor = "E301"

	// ErrCodeFrozen indicates a mutation after assembly started.
	ErrCodeFrozen = "E302"
)

// ConsistencyError reports contradictory semantic-model facts, such as a
// duplicate registration of an exclusive role.
type ConsistencyError struct {
	Code    string
	Role    Role
	Bound   string // identifier already bound to the role
	Message string
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("[%s] role %s: %s", e.Code, e.Role, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidationError reports an out-of-domain building descriptor value.
// Descriptors fail loudly rather than clamping: a negative floor area is
// a fact the translation must not paper over.
type ValidationError struct {
	Code    string
	Field   string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s (value %s)", e.Code, e.Field, e.Message, e.Value)
}

// IsRoleBound returns true if err is a duplicate exclusive-role
// registration. Uses errors.As to handle wrapped errors.
func IsRoleBound(err error) bool {
	var ce *ConsistencyError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeRoleBound
	}
	return false
}
