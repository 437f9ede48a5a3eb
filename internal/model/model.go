package model

import (
	"github.com/google/uuid"
)

// Severity classifies a warning. Warnings never block a run; anything
// that must block is an error, not a high-severity warning.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityNotice Severity = "notice"
	SeverityMajor  Severity = "major"
)

// Warning is one entry in the append-only warning log.
type Warning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Context  string   `json:"context"` // source path or entity id
}

// Model is the semantic model of one translation run.
//
// Not safe for concurrent use: each run owns exactly one Model and runs
// single-threaded. Batch parallelism happens across Models, never within
// one.
type Model struct {
	runToken    string
	counters    map[string]int
	systems     map[Role]string
	descriptors descriptors
	warnings    []Warning
	frozen      bool
}

// New creates a fresh Model with a v7 run token for log and batch
// correlation.
func New() *Model {
	return &Model{
		runToken: uuid.Must(uuid.NewV7()).String(),
		counters: make(map[string]int),
		systems:  make(map[Role]string),
	}
}

// RunToken returns the run's correlation token.
func (m *Model) RunToken() string {
	return m.runToken
}

// Increment bumps the named counter and returns its new value.
// The first call for an unseen name returns 1; within one run the
// returned values for a name are exactly 1..N with no repeats or gaps.
func (m *Model) Increment(name string) int {
	m.counters[name]++
	return m.counters[name]
}

// Counter returns the current value of the named counter without
// incrementing. Unseen names read as 0.
func (m *Model) Counter(name string) int {
	return m.counters[name]
}

// RegisterSystem binds role to the generated identifier id.
// Exclusive roles reject a second registration with a *ConsistencyError;
// rebindable roles overwrite the earlier binding.
func (m *Model) RegisterSystem(role Role, id string) error {
	if err := m.mutable("RegisterSystem"); err != nil {
		return err
	}
	if bound, ok := m.systems[role]; ok && !role.Rebindable() {
		return &ConsistencyError{
			Code:    ErrCodeRoleBound,
			Role:    role,
			Bound:   bound,
			Message: "exclusive role already bound to " + bound,
		}
	}
	m.systems[role] = id
	return nil
}

// SystemID returns the identifier bound to role, if any.
func (m *Model) SystemID(role Role) (string, bool) {
	id, ok := m.systems[role]
	return id, ok
}

// AddWarning appends to the warning log. Never fails, never clears, and
// stays usable after Freeze: assembly may still warn.
func (m *Model) AddWarning(sev Severity, message, context string) {
	m.warnings = append(m.warnings, Warning{Severity: sev, Message: message, Context: context})
}

// Warnings returns the ordered warning log.
func (m *Model) Warnings() []Warning {
	return m.warnings
}

// Freeze marks the model read-only. Called when assembly starts; any
// later counter, registry, or descriptor mutation is a *ConsistencyError.
func (m *Model) Freeze() {
	m.frozen = true
}

func (m *Model) mutable(op string) error {
	if m.frozen {
		return &ConsistencyError{
			Code:    ErrCodeFrozen,
			Message: op + " after assembly started",
		}
	}
	return nil
}
