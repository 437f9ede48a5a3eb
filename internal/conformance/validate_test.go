package conformance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/h2hpxml/internal/source"
	"github.com/roach88/h2hpxml/internal/testutil"
	"github.com/roach88/h2hpxml/internal/translate"
)

const skeleton = `<?xml version="1.0" encoding="UTF-8"?>
<HPXML xmlns="http://hpxmlonline.com/2023/09" schemaVersion="4.0">
  <XMLTransactionHeaderInformation>
    <XMLType>HPXML</XMLType>
    <Transaction>create</Transaction>
  </XMLTransactionHeaderInformation>
  <SoftwareInfo/>
  <Building>
    <BuildingID id="Building1"/>
    <ProjectStatus>
      <EventType>audit</EventType>
    </ProjectStatus>
    <BuildingDetails>
      <BuildingSummary>
        <BuildingConstruction>
          <ResidentialFacilityType>single-family detached</ResidentialFacilityType>
          <ConditionedFloorArea>1500</ConditionedFloorArea>
        </BuildingConstruction>
      </BuildingSummary>
      <ClimateandRiskZones>
        <WeatherStation>
          <Name>Ottawa</Name>
        </WeatherStation>
      </ClimateandRiskZones>
      <Enclosure>
        <AirInfiltration>
          <AirInfiltrationMeasurement>
            <SystemIdentifier id="AirInfiltrationMeasurement1"/>
            <HousePressure>50</HousePressure>
            <BuildingAirLeakage>
              <UnitofMeasure>ACH</UnitofMeasure>
              <AirLeakage>3.57</AirLeakage>
            </BuildingAirLeakage>
          </AirInfiltrationMeasurement>
        </AirInfiltration>
        <Walls>
          <Wall>
            <SystemIdentifier id="Wall1"/>
            <WallType>
              <WoodStud/>
            </WallType>
            <Area>880.2</Area>
            <Insulation>
              <SystemIdentifier id="Insulation1"/>
              <AssemblyEffectiveRValue>19.6</AssemblyEffectiveRValue>
            </Insulation>
          </Wall>
        </Walls>
        <Windows>
          <Window>
            <SystemIdentifier id="Window1"/>
            <Area>23.7</Area>
            <UFactor>0.503</UFactor>
            <SHGC>0.6</SHGC>
            <AttachedToWall idref="Wall1"/>
          </Window>
        </Windows>
      </Enclosure>
    </BuildingDetails>
  </Building>
</HPXML>
`

// mutate swaps one substring of the skeleton, failing the test if the
// substring is absent so a skeleton edit cannot silently defuse a case.
func mutate(t *testing.T, old, new string) []byte {
	t.Helper()
	require.Contains(t, skeleton, old)
	return []byte(strings.Replace(skeleton, old, new, 1))
}

func firstMessage(r Result) string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

func TestValidateSkeletonClean(t *testing.T) {
	res := Validate([]byte(skeleton))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateTranslatedDocumentClean(t *testing.T) {
	doc, err := source.Parse(strings.NewReader(testutil.DefaultHouse().XML()))
	require.NoError(t, err)
	out, err := translate.Translate(doc, translate.DefaultConfig())
	require.NoError(t, err)
	require.True(t, out.OK)

	res := Validate(out.Document)
	for _, issue := range res.Errors {
		t.Logf("issue: %s", issue)
	}
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateWrongRoot(t *testing.T) {
	res := Validate([]byte(`<?xml version="1.0"?>` + "\n<HouseFile/>\n"))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "want HPXML")
}

func TestValidateMissingNamespace(t *testing.T) {
	res := Validate(mutate(t, ` xmlns="http://hpxmlonline.com/2023/09"`, ""))
	require.False(t, res.Valid)
	assert.Contains(t, firstMessage(res), "namespace")
}

func TestValidateWrongSchemaVersion(t *testing.T) {
	res := Validate(mutate(t, `schemaVersion="4.0"`, `schemaVersion="3.0"`))
	require.False(t, res.Valid)
	assert.Contains(t, firstMessage(res), `want "4.0"`)
}

func TestValidateMissingRequiredElement(t *testing.T) {
	res := Validate(mutate(t, "<EventType>audit</EventType>", ""))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "HPXML/Building/ProjectStatus/EventType", res.Errors[0].Path)
	assert.Contains(t, res.Errors[0].Message, "required")
}

func TestValidateEnumViolation(t *testing.T) {
	res := Validate(mutate(t, "<Transaction>create</Transaction>", "<Transaction>merge</Transaction>"))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, `"merge"`)
	assert.Equal(t, 5, res.Errors[0].Line)
	assert.Equal(t, "HPXML/XMLTransactionHeaderInformation/Transaction", res.Errors[0].Path)
}

func TestValidateRangeViolation(t *testing.T) {
	res := Validate(mutate(t, "<SHGC>0.6</SHGC>", "<SHGC>1.6</SHGC>"))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "out of range")
}

func TestValidateRangeExclusiveMin(t *testing.T) {
	res := Validate(mutate(t, "<Area>23.7</Area>", "<Area>0</Area>"))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "want > 0")
}

func TestValidateNonNumericRangeField(t *testing.T) {
	res := Validate(mutate(t, "<AirLeakage>3.57</AirLeakage>", "<AirLeakage>lots</AirLeakage>"))
	require.False(t, res.Valid)
	assert.Contains(t, firstMessage(res), "not numeric")
}

func TestValidateDuplicateIdentifier(t *testing.T) {
	res := Validate(mutate(t, `<SystemIdentifier id="Insulation1"/>`, `<SystemIdentifier id="Wall1"/>`))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "already used")
}

func TestValidateIdentifierPattern(t *testing.T) {
	res := Validate(mutate(t, `<SystemIdentifier id="Window1"/>`, `<SystemIdentifier id="1Window"/>`))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, `"1Window"`)
}

func TestValidateDanglingIdref(t *testing.T) {
	res := Validate(mutate(t, `idref="Wall1"`, `idref="Wall9"`))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, `"Wall9"`)
	assert.Equal(t, "HPXML/Building/BuildingDetails/Enclosure/Windows/Window/AttachedToWall", res.Errors[0].Path)
}

func TestValidateEmptyIdref(t *testing.T) {
	res := Validate(mutate(t, `idref="Wall1"`, `idref=""`))
	require.False(t, res.Valid)
	assert.Contains(t, firstMessage(res), "empty idref")
}

func TestValidateEntityWithoutIdentifier(t *testing.T) {
	res := Validate(mutate(t, `<SystemIdentifier id="Window1"/>`, ""))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "no SystemIdentifier")
	assert.Equal(t, "HPXML/Building/BuildingDetails/Enclosure/Windows/Window", res.Errors[0].Path)
}

func TestValidateMalformedDocument(t *testing.T) {
	res := Validate([]byte(`<HPXML xmlns="http://hpxmlonline.com/2023/09" schemaVersion="4.0"><Building></HPXML>`))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "malformed")
}

func TestValidateEmptyInput(t *testing.T) {
	res := Validate(nil)
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "no root element")
}

func TestValidateCollectsMultipleIssues(t *testing.T) {
	doc := mutate(t, "<Transaction>create</Transaction>", "<Transaction>merge</Transaction>")
	doc = []byte(strings.Replace(string(doc), "<SHGC>0.6</SHGC>", "<SHGC>1.6</SHGC>", 1))
	res := Validate(doc)
	require.False(t, res.Valid)
	assert.Len(t, res.Errors, 2)
}
