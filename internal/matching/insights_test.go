package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInsightsWithoutMatches(t *testing.T) {
	assert.Equal(t, fallbackTips, DefaultInsights(nil))
}

func TestDefaultInsightsDiverseMatches(t *testing.T) {
	matches := []Profile{
		{Age: 24, Profession: "Engineer", Interests: []string{"Travel", "Music"}},
		{Age: 27, Profession: "Designer", Interests: []string{"Music", "Art"}},
	}

	insights := DefaultInsights(matches)
	require.Len(t, insights, InsightCount)
	assert.Equal(t, "Your matches average 26 years old, suggesting you attract people in a similar life stage", insights[0])
	assert.Equal(t, "Music appears frequently in your matches - consider highlighting this interest in your profile", insights[1])
	assert.Equal(t, "You attract people from diverse professional backgrounds, showing your broad appeal", insights[2])
}

func TestDefaultInsightsSimilarProfessions(t *testing.T) {
	matches := []Profile{
		{Age: 30, Profession: "Engineer"},
		{Age: 30, Profession: "Engineer"},
		{Age: 30, Profession: "Engineer"},
		{Age: 30, Profession: "Engineer"},
	}

	insights := DefaultInsights(matches)
	require.Len(t, insights, InsightCount)
	assert.Contains(t, insights[1], "similar professional fields")
	// no interests, so one tip pads the list
	assert.Equal(t, fallbackTips[0], insights[2])
}

func TestMostCommonInterestsTieKeepsFirstSeen(t *testing.T) {
	matches := []Profile{
		{Interests: []string{"Yoga", "Books"}},
		{Interests: []string{"Books", "Chess", "Yoga"}},
		{Interests: []string{"Chess"}},
	}

	assert.Equal(t, []string{"Yoga", "Books", "Chess"}, MostCommonInterests(matches))
}
