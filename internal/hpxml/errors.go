package hpxml

import (
	"errors"
	"fmt"
)

// Registry error codes (E400-E409).
const (
	// ErrCodeUnresolvedRole indicates a recorded reference whose role was
	// never bound.
	ErrCodeUnresolvedRole = "E400"

	// ErrCodeBadClassLabel indicates an entity class label that cannot
	// produce a pattern-conformant identifier.
	ErrCodeBadClassLabel = "E401"

	// ErrCodeMissingIdentifier indicates an entity node without a
	// SystemIdentifier at assembly time.
	ErrCodeMissingIdentifier = "E402"

	// ErrCodeDuplicateIdentifier indicates a SystemIdentifier value used
	// twice in one document.
	ErrCodeDuplicateIdentifier = "E403"
)

// RefError reports a recorded reference that never resolved, or a
// structural defect found during assembly.
type RefError struct {
	Code    string
	Node    string // path of the referencing or defective node
	Role    string
	Message string
}

// Error implements the error interface.
func (e *RefError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("[%s] %s: %s (role %s)", e.Code, e.Node, e.Message, e.Role)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Node, e.Message)
}

// IsUnresolvedRole returns true if err is an unresolved-reference error.
// Uses errors.As to handle wrapped errors.
func IsUnresolvedRole(err error) bool {
	var re *RefError
	if errors.As(err, &re) {
		return re.Code == ErrCodeUnresolvedRole
	}
	return false
}
