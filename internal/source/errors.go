package source

import (
	"errors"
	"fmt"
)

// Parse error codes (E200-E209).
const (
	// ErrCodeMalformedXML indicates the input is not well-formed XML.
	ErrCodeMalformedXML = "E200"

	// ErrCodeMissingMandatory indicates a mandatory path is absent.
	ErrCodeMissingMandatory = "E201"

	// ErrCodeBadNumber indicates non-numeric text in a numeric field.
	ErrCodeBadNumber = "E202"

	// ErrCodeBadBool indicates an unrecognized boolean literal.
	ErrCodeBadBool = "E203"
)

// ParseError reports malformed or missing mandatory source data.
// Path is always the full path from the document root, even when the
// read was issued against a subtree.
type ParseError struct {
	Code    string
	Path    string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("[%s] %s: %s (value %q)", e.Code, e.Path, e.Message, e.Value)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// IsMissingMandatory returns true if err is a ParseError for an absent
// mandatory path. Uses errors.As to handle wrapped errors.
func IsMissingMandatory(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeMissingMandatory
	}
	return false
}
