package model

import "fmt"

// FacilityType is the closed set of building facility types the
// translation supports. Downstream stages assume exactly these two
// values; anything else must have failed earlier as a mapping error.
type FacilityType string

const (
	FacilityDetached FacilityType = "single-family detached"
	FacilityAttached FacilityType = "single-family attached"
)

// descriptors holds flat building facts derived by early stages and read
// by later ones. All setters are domain-checked: out-of-domain values
// fail rather than clamp.
type descriptors struct {
	facilityType         FacilityType
	facilityTypeSet      bool
	conditionedFloorArea float64 // m2, > 0
	floorAreaSet         bool
	infiltrationACH      float64 // air changes per hour at 50 Pa, > 0
	infiltrationSet      bool
	storeys              int // 1..4
	storeysSet           bool
	heatedVolume         float64 // m3, > 0
	volumeSet            bool
}

// SetFacilityType records the derived facility type.
func (m *Model) SetFacilityType(ft FacilityType) error {
	if err := m.mutable("SetFacilityType"); err != nil {
		return err
	}
	if ft != FacilityDetached && ft != FacilityAttached {
		return badDescriptor("facility type", string(ft), "outside the closed facility set")
	}
	m.descriptors.facilityType = ft
	m.descriptors.facilityTypeSet = true
	return nil
}

// FacilityType returns the derived facility type.
func (m *Model) FacilityType() (FacilityType, bool) {
	return m.descriptors.facilityType, m.descriptors.facilityTypeSet
}

// SetConditionedFloorArea records the conditioned floor area in m2.
func (m *Model) SetConditionedFloorArea(area float64) error {
	if err := m.mutable("SetConditionedFloorArea"); err != nil {
		return err
	}
	if area <= 0 {
		return badDescriptor("conditioned floor area", fmt.Sprintf("%g", area), "must be positive")
	}
	m.descriptors.conditionedFloorArea = area
	m.descriptors.floorAreaSet = true
	return nil
}

// ConditionedFloorArea returns the conditioned floor area in m2.
func (m *Model) ConditionedFloorArea() (float64, bool) {
	return m.descriptors.conditionedFloorArea, m.descriptors.floorAreaSet
}

// SetInfiltrationACH records the blower-door result in ACH at 50 Pa.
func (m *Model) SetInfiltrationACH(ach float64) error {
	if err := m.mutable("SetInfiltrationACH"); err != nil {
		return err
	}
	if ach <= 0 {
		return badDescriptor("infiltration", fmt.Sprintf("%g", ach), "ACH50 must be positive")
	}
	m.descriptors.infiltrationACH = ach
	m.descriptors.infiltrationSet = true
	return nil
}

// InfiltrationACH returns the blower-door result in ACH at 50 Pa.
func (m *Model) InfiltrationACH() (float64, bool) {
	return m.descriptors.infiltrationACH, m.descriptors.infiltrationSet
}

// SetStoreyCount records the above-grade storey count.
func (m *Model) SetStoreyCount(n int) error {
	if err := m.mutable("SetStoreyCount"); err != nil {
		return err
	}
	if n < 1 || n > 4 {
		return badDescriptor("storeys", fmt.Sprintf("%d", n), "must be between 1 and 4")
	}
	m.descriptors.storeys = n
	m.descriptors.storeysSet = true
	return nil
}

// StoreyCount returns the above-grade storey count.
func (m *Model) StoreyCount() (int, bool) {
	return m.descriptors.storeys, m.descriptors.storeysSet
}

// SetHeatedVolume records the heated volume in m3.
func (m *Model) SetHeatedVolume(v float64) error {
	if err := m.mutable("SetHeatedVolume"); err != nil {
		return err
	}
	if v <= 0 {
		return badDescriptor("heated volume", fmt.Sprintf("%g", v), "must be positive")
	}
	m.descriptors.heatedVolume = v
	m.descriptors.volumeSet = true
	return nil
}

// HeatedVolume returns the heated volume in m3.
func (m *Model) HeatedVolume() (float64, bool) {
	return m.descriptors.heatedVolume, m.descriptors.volumeSet
}

func badDescriptor(field, value, msg string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeBadDescriptor,
		Field:   field,
		Value:   value,
		Message: msg,
	}
}
