package translate

import (
	"errors"
	"fmt"
)

// Mapping error codes (E500-E519).
const (
	// ErrCodeUnmappedFacility indicates a facility code outside the
	// closed facility table.
	ErrCodeUnmappedFacility = "E500"

	// ErrCodeUnmappedStoreys indicates an unknown storey code.
	ErrCodeUnmappedStoreys = "E501"

	// ErrCodeUnmappedEquipment indicates an unknown system-type code.
	ErrCodeUnmappedEquipment = "E502"

	// ErrCodeUnmappedFuel indicates an unknown energy-source code.
	ErrCodeUnmappedFuel = "E503"

	// ErrCodeUnknownLocation indicates a weather location absent from
	// the station table with no coordinates to fall back on.
	ErrCodeUnknownLocation = "E504"

	// ErrCodeBadGeometry indicates an internally inconsistent derived
	// value, such as a non-positive component area.
	ErrCodeBadGeometry = "E510"
)

// MappingError reports a source value absent from a closed mapping
// table. The mapping tables are deliberately closed: an unknown code is
// a fact about the document, never something to guess around.
type MappingError struct {
	Code     string
	Table    string // which closed table missed
	Path     string // source path of the offending field
	Value    string
	EntityID string // already-allocated target id, when one exists
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	msg := fmt.Sprintf("[%s] %s: value %q not in %s table", e.Code, e.Path, e.Value, e.Table)
	if e.EntityID != "" {
		msg += " (entity " + e.EntityID + ")"
	}
	return msg
}

// GeometryError reports an internally inconsistent derived value.
type GeometryError struct {
	Code     string
	Path     string
	Value    string
	EntityID string
	Message  string
}

// Error implements the error interface.
func (e *GeometryError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s (value %s)", e.Code, e.Path, e.Message, e.Value)
	if e.EntityID != "" {
		msg += " (entity " + e.EntityID + ")"
	}
	return msg
}

// IsMappingError returns true if err is a closed-table miss.
// Uses errors.As to handle wrapped errors.
func IsMappingError(err error) bool {
	var me *MappingError
	return errors.As(err, &me)
}
