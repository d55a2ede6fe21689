package matching

import (
	"fmt"
	"math"
	"sort"
)

// InsightCount is how many insights are returned to the client
const InsightCount = 3

var fallbackTips = []string{
	"Consider adding more photos to increase your match rate by up to 40%",
	"Users with detailed bios receive 60% more meaningful conversations",
	"Being active during peak hours (7-9 PM) increases your visibility",
}

// DefaultInsights derives insights from the match list itself, padded with
// generic tips to exactly InsightCount entries
func DefaultInsights(matches []Profile) []string {
	insights := make([]string, 0, InsightCount)

	if len(matches) > 0 {
		total := 0
		for _, match := range matches {
			total += match.Age
		}
		avgAge := math.Round(float64(total) / float64(len(matches)))
		insights = append(insights, fmt.Sprintf(
			"Your matches average %d years old, suggesting you attract people in a similar life stage", int(avgAge)))

		if common := MostCommonInterests(matches); len(common) > 0 {
			insights = append(insights, fmt.Sprintf(
				"%s appears frequently in your matches - consider highlighting this interest in your profile", common[0]))
		}

		professions := make(map[string]struct{})
		for _, match := range matches {
			professions[match.Profession] = struct{}{}
		}
		if float64(len(professions)) < float64(len(matches))/2 {
			insights = append(insights, "You tend to attract people in similar professional fields - consider expanding your interests to meet more diverse matches")
		} else {
			insights = append(insights, "You attract people from diverse professional backgrounds, showing your broad appeal")
		}
	}

	for _, tip := range fallbackTips {
		if len(insights) >= InsightCount {
			break
		}
		insights = append(insights, tip)
	}

	return insights[:InsightCount]
}

// MostCommonInterests lists interests by descending frequency across
// matches. Equal counts keep the order the interests were first seen.
func MostCommonInterests(matches []Profile) []string {
	counts := make(map[string]int)
	var order []string
	for _, match := range matches {
		for _, interest := range match.Interests {
			if _, seen := counts[interest]; !seen {
				order = append(order, interest)
			}
			counts[interest]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}
