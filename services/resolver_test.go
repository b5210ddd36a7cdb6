package services

import (
	"testing"

	"membership-console/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ResolverTestSuite struct {
	suite.Suite
	resolver *Resolver
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.resolver = newTestResolver(testStates(), testDistricts())
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (suite *ResolverTestSuite) TestDistrictsForPreservesLoadOrder() {
	districts := suite.resolver.DistrictsFor(1)

	assert.Len(suite.T(), districts, 2)
	assert.Equal(suite.T(), "Mysuru", districts[0].Name)
	assert.Equal(suite.T(), "Udupi", districts[1].Name)
	for _, d := range districts {
		assert.Equal(suite.T(), 1, d.StateID)
	}
}

func (suite *ResolverTestSuite) TestDistrictsForStateWithoutDistricts() {
	// Not an error: the selector just has no options.
	assert.Empty(suite.T(), suite.resolver.DistrictsFor(42))
}

func (suite *ResolverTestSuite) TestOrphanDistrictNeverShown() {
	for _, stateID := range []int{1, 2} {
		for _, d := range suite.resolver.DistrictsFor(stateID) {
			assert.NotEqual(suite.T(), 99, d.ID)
		}
	}
}

func (suite *ResolverTestSuite) TestNameLookups() {
	assert.Equal(suite.T(), "Karnataka", suite.resolver.StateName(1))
	assert.Equal(suite.T(), "Pune", suite.resolver.DistrictName(20))
	assert.Equal(suite.T(), "", suite.resolver.StateName(404))
	assert.Equal(suite.T(), "", suite.resolver.DistrictName(404))
}

func (suite *ResolverTestSuite) TestStateChangeClearsDistrict() {
	fields := map[string]interface{}{
		"stateId":    1,
		"districtId": 10,
		"name":       "Khelo Club",
	}

	suite.resolver.ApplyStateChange(fields, 2)

	assert.Equal(suite.T(), 2, fields["stateId"])
	_, hasDistrict := fields["districtId"]
	assert.False(suite.T(), hasDistrict, "district selection must be cleared in the same update")
	assert.Equal(suite.T(), "Khelo Club", fields["name"])
}

func (suite *ResolverTestSuite) TestSelectorsDisabledWhileLoading() {
	client := new(MockRegistryClient)
	ref := NewRefDataService(client, testLogger())
	resolver := NewResolver(ref)

	assert.True(suite.T(), resolver.SelectorsDisabled())
}

// End-to-end: one state, two districts; selecting the state yields exactly
// those two options, an unselected state yields none with the selector
// still usable (reference data settled).
func (suite *ResolverTestSuite) TestCascadeScenario() {
	resolver := newTestResolver(
		[]models.GeoState{{ID: 1, Name: "A"}},
		[]models.GeoDistrict{
			{ID: 10, StateID: 1, Name: "X"},
			{ID: 11, StateID: 1, Name: "Y"},
		},
	)

	names := []string{}
	for _, d := range resolver.DistrictsFor(1) {
		names = append(names, d.Name)
	}
	assert.Equal(suite.T(), []string{"X", "Y"}, names)

	assert.Empty(suite.T(), resolver.DistrictsFor(0))
	assert.False(suite.T(), resolver.SelectorsDisabled())
}
