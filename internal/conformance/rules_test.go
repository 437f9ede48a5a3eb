package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCompile(t *testing.T) {
	rs := rules()
	require.NotNil(t, rs)

	assert.Equal(t, "4.0", rs.SchemaVersion)
	assert.True(t, rs.IDPattern.MatchString("Wall1"))
	assert.False(t, rs.IDPattern.MatchString("1Wall"))
	assert.False(t, rs.IDPattern.MatchString("Wall"))

	assert.NotEmpty(t, rs.Required)
	assert.True(t, rs.Enums["Transaction"]["create"])
	assert.False(t, rs.Enums["Transaction"]["merge"])
	assert.True(t, rs.Entities["Wall"])

	shgc, ok := rs.Ranges["SHGC"]
	require.True(t, ok)
	assert.Equal(t, 0.0, shgc.Min)
	assert.True(t, shgc.HasMax)
	assert.Equal(t, 1.0, shgc.Max)

	area, ok := rs.Ranges["Area"]
	require.True(t, ok)
	assert.True(t, area.ExclusiveMin)
	assert.False(t, area.HasMax)
}

func TestCompileRulesRejectsBadSource(t *testing.T) {
	_, err := compileRules(`schemaVersion: 4`)
	require.Error(t, err)
}

func TestCompileRulesRejectsNonListRequired(t *testing.T) {
	_, err := compileRules(`
schemaVersion: "4.0"
idPattern: "^[A-Za-z]+[0-9]+$"
required: "not-a-list"
enums: {}
ranges: {}
entities: []
`)
	require.Error(t, err)
}
