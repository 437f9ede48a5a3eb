package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelHasV7RunToken(t *testing.T) {
	m := New()

	parsed, err := uuid.Parse(m.RunToken())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRunTokensUniqueAcrossRuns(t *testing.T) {
	assert.NotEqual(t, New().RunToken(), New().RunToken())
}

func TestIncrementStartsAtOne(t *testing.T) {
	m := New()

	assert.Equal(t, 1, m.Increment("Window"))
	assert.Equal(t, 2, m.Increment("Window"))
	assert.Equal(t, 1, m.Increment("Wall"))
}

func TestIncrementMonotoneNoGaps(t *testing.T) {
	m := New()

	for want := 1; want <= 100; want++ {
		assert.Equal(t, want, m.Increment("Window"))
	}
	assert.Equal(t, 100, m.Counter("Window"))
}

func TestCountersIndependentAcrossRuns(t *testing.T) {
	m1 := New()
	m1.Increment("Wall")
	m1.Increment("Wall")

	m2 := New()
	assert.Equal(t, 1, m2.Increment("Wall"), "fresh run must restart counters")
}

func TestRegisterSystemExclusiveRoleRejectsSecondBinding(t *testing.T) {
	m := New()

	require.NoError(t, m.RegisterSystem(RolePrimaryHeating, "HeatingSystem1"))
	err := m.RegisterSystem(RolePrimaryHeating, "HeatingSystem2")
	require.Error(t, err)
	assert.True(t, IsRoleBound(err))

	id, ok := m.SystemID(RolePrimaryHeating)
	require.True(t, ok)
	assert.Equal(t, "HeatingSystem1", id, "failed registration must not overwrite")
}

func TestRegisterSystemBackupHeatingRebinds(t *testing.T) {
	m := New()

	require.NoError(t, m.RegisterSystem(RoleBackupHeating, "HeatingSystem1"))
	require.NoError(t, m.RegisterSystem(RoleBackupHeating, "HeatingSystem2"))

	id, ok := m.SystemID(RoleBackupHeating)
	require.True(t, ok)
	assert.Equal(t, "HeatingSystem2", id)
}

func TestSystemIDUnboundRole(t *testing.T) {
	m := New()

	_, ok := m.SystemID(RoleCooling)
	assert.False(t, ok)
}

func TestAddWarningAppendsInOrder(t *testing.T) {
	m := New()

	m.AddWarning(SeverityInfo, "first", "House/A")
	m.AddWarning(SeverityMajor, "second", "House/B")

	ws := m.Warnings()
	require.Len(t, ws, 2)
	assert.Equal(t, "first", ws[0].Message)
	assert.Equal(t, SeverityMajor, ws[1].Severity)
	assert.Equal(t, "House/B", ws[1].Context)
}

func TestDescriptorsRejectOutOfDomain(t *testing.T) {
	m := New()

	require.Error(t, m.SetConditionedFloorArea(-10))
	require.Error(t, m.SetConditionedFloorArea(0))
	require.Error(t, m.SetInfiltrationACH(0))
	require.Error(t, m.SetStoreyCount(0))
	require.Error(t, m.SetStoreyCount(5))
	require.Error(t, m.SetHeatedVolume(-1))
	require.Error(t, m.SetFacilityType("castle"))

	_, ok := m.ConditionedFloorArea()
	assert.False(t, ok, "rejected value must not be stored")
}

func TestDescriptorsRoundTrip(t *testing.T) {
	m := New()

	require.NoError(t, m.SetFacilityType(FacilityDetached))
	require.NoError(t, m.SetConditionedFloorArea(92.9))
	require.NoError(t, m.SetInfiltrationACH(4.55))
	require.NoError(t, m.SetStoreyCount(2))
	require.NoError(t, m.SetHeatedVolume(357.8))

	ft, ok := m.FacilityType()
	require.True(t, ok)
	assert.Equal(t, FacilityDetached, ft)

	area, ok := m.ConditionedFloorArea()
	require.True(t, ok)
	assert.InDelta(t, 92.9, area, 1e-9)
}

func TestFreezeBlocksMutationButNotWarnings(t *testing.T) {
	m := New()
	require.NoError(t, m.RegisterSystem(RolePrimaryHeating, "HeatingSystem1"))

	m.Freeze()

	require.Error(t, m.RegisterSystem(RoleCooling, "CoolingSystem1"))
	require.Error(t, m.SetConditionedFloorArea(50))

	m.AddWarning(SeverityInfo, "still fine", "")
	assert.Len(t, m.Warnings(), 1)
}
