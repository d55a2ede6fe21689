package matching

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterByPreferences keeps candidates inside the preferred age range and,
// when a location is preferred, in a matching city. Cities are compared on
// the first comma-separated segment and match when either contains the other.
func FilterByPreferences(candidates []Profile, prefs Preferences) []Profile {
	var wantCity string
	if prefs.Location != "" {
		wantCity = city(prefs.Location)
	}

	kept := make([]Profile, 0, len(candidates))
	for _, candidate := range candidates {
		if !inAgeRange(candidate.Age, prefs.AgeRange) {
			continue
		}

		if prefs.Location != "" {
			theirCity := city(candidate.Location)
			if !strings.Contains(theirCity, wantCity) && !strings.Contains(wantCity, theirCity) {
				continue
			}
		}

		kept = append(kept, candidate)
	}
	return kept
}

// Filter applies browse filters to matches, keeping their order
func Filter(matches []Profile, f Filters) []Profile {
	kept := make([]Profile, 0, len(matches))
	for _, match := range matches {
		if f.matches(match) {
			kept = append(kept, match)
		}
	}
	return kept
}

func (f Filters) matches(match Profile) bool {
	// Age
	if !inAgeRange(match.Age, f.AgeRange) {
		return false
	}

	// Distance
	if f.MaxDistance > 0 && match.Distance > f.MaxDistance {
		return false
	}

	// Profession
	if f.Profession != "" && !strings.Contains(fold(match.Profession), fold(f.Profession)) {
		return false
	}

	// Education is an exact match
	if f.Education != "" && match.Education != f.Education {
		return false
	}

	// Interests: any filter interest inside any match interest
	if len(f.Interests) > 0 && !anyInterest(match.Interests, f.Interests) {
		return false
	}

	// Search term over name, profession and interests
	if f.Search != "" {
		return searchMatches(match, f.Search)
	}

	return true
}

// searchMatches reports whether the search term fuzzily matches the name,
// the profession or any interest. Every substring match is also a fuzzy
// match, so plain substring searches keep working.
func searchMatches(match Profile, term string) bool {
	if fuzzy.MatchFold(term, match.Name) || fuzzy.MatchFold(term, match.Profession) {
		return true
	}
	for _, interest := range match.Interests {
		if fuzzy.MatchFold(term, interest) {
			return true
		}
	}
	return false
}

func anyInterest(have, want []string) bool {
	for _, w := range want {
		needle := fold(w)
		for _, h := range have {
			if strings.Contains(fold(h), needle) {
				return true
			}
		}
	}
	return false
}

// inAgeRange treats a zero range as unbounded and a zero upper bound as open
func inAgeRange(age int, ageRange [2]int) bool {
	if ageRange == [2]int{} {
		return true
	}
	if age < ageRange[0] {
		return false
	}
	if ageRange[1] > 0 && age > ageRange[1] {
		return false
	}
	return true
}

func city(location string) string {
	first, _, _ := strings.Cut(location, ",")
	return fold(strings.TrimSpace(first))
}
