package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(profiles []Profile) []int {
	out := make([]int, len(profiles))
	for i, p := range profiles {
		out[i] = p.ID
	}
	return out
}

func TestFilterByPreferences(t *testing.T) {
	candidates := []Profile{
		{ID: 1, Age: 26, Location: "Mumbai, Maharashtra"},
		{ID: 2, Age: 27, Location: "Delhi, Delhi"},
		{ID: 3, Age: 35, Location: "Mumbai, Maharashtra"},
		{ID: 4, Age: 28, Location: "Navi Mumbai, Maharashtra"},
		{ID: 5, Age: 25, Location: "mumbai"},
	}

	prefs := Preferences{AgeRange: [2]int{25, 30}, Location: "Mumbai, India"}
	assert.Equal(t, []int{1, 4, 5}, ids(FilterByPreferences(candidates, prefs)))

	// no location preference keeps every city
	prefs.Location = ""
	assert.Equal(t, []int{1, 2, 4, 5}, ids(FilterByPreferences(candidates, prefs)))
}

func TestFilter(t *testing.T) {
	matches := []Profile{
		{ID: 1, Name: "Priya Sharma", Age: 26, Distance: 3.5, Profession: "Software Engineer", Education: "Master's", Interests: []string{"Technology", "Yoga"}},
		{ID: 2, Name: "Ananya Gupta", Age: 31, Distance: 12, Profession: "Doctor", Education: "PhD", Interests: []string{"Travel", "Books"}},
		{ID: 3, Name: "Kavya Patel", Age: 24, Distance: 40, Profession: "Designer", Education: "Bachelor's", Interests: []string{"Art", "Music"}},
	}

	tests := []struct {
		name    string
		filters Filters
		want    []int
	}{
		{"no filters", Filters{}, []int{1, 2, 3}},
		{"age range", Filters{AgeRange: [2]int{25, 32}}, []int{1, 2}},
		{"max distance", Filters{MaxDistance: 15}, []int{1, 2}},
		{"profession substring", Filters{Profession: "engineer"}, []int{1}},
		{"education exact", Filters{Education: "PhD"}, []int{2}},
		{"education is case sensitive", Filters{Education: "phd"}, []int{}},
		{"any interest", Filters{Interests: []string{"music", "travel"}}, []int{2, 3}},
		{"search by name", Filters{Search: "priya"}, []int{1}},
		{"search by profession", Filters{Search: "Doctor"}, []int{2}},
		{"search by interest", Filters{Search: "yog"}, []int{1}},
		{"fuzzy search", Filters{Search: "kvya"}, []int{3}},
		{"search without hit", Filters{Search: "zzz"}, []int{}},
		{"combined", Filters{AgeRange: [2]int{18, 50}, MaxDistance: 50, Interests: []string{"Art"}}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(matches, tt.filters)))
		})
	}
}

func TestInAgeRange(t *testing.T) {
	assert.True(t, inAgeRange(99, [2]int{}))
	assert.True(t, inAgeRange(40, [2]int{18, 0}))
	assert.False(t, inAgeRange(17, [2]int{18, 0}))
	assert.True(t, inAgeRange(18, [2]int{18, 18}))
}
