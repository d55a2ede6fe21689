package matching

import (
	"fmt"
	"strings"
)

func rankingPrompt(subject Subject, prefs Preferences, candidates []Profile) string {
	var b strings.Builder

	b.WriteString("As an AI dating expert, analyze the following user profile and preferences to rank potential matches:\n\n")

	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Age: %d\n", subject.Age)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(subject.Interests, ", "))
	fmt.Fprintf(&b, "- Profession: %s\n", subject.Profession)
	fmt.Fprintf(&b, "- Education: %s\n\n", subject.Education)

	b.WriteString("Preferences:\n")
	fmt.Fprintf(&b, "- Age Range: %d-%d\n", prefs.AgeRange[0], prefs.AgeRange[1])
	fmt.Fprintf(&b, "- Location: %s\n", prefs.Location)
	fmt.Fprintf(&b, "- Interested in: %s\n\n", strings.Join(prefs.Interests, ", "))

	b.WriteString("Potential Matches:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "%d. %s, %d, %s\n", c.ID, c.Name, c.Age, c.Profession)
		fmt.Fprintf(&b, "Location: %s\n", c.Location)
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(c.Interests, ", "))
		fmt.Fprintf(&b, "Bio: %s\n\n", c.Bio)
	}

	b.WriteString("Please provide compatibility scores (0-100) for each match based on:\n")
	b.WriteString("1. Shared interests and values\n")
	b.WriteString("2. Lifestyle compatibility\n")
	b.WriteString("3. Communication style compatibility\n")
	b.WriteString("4. Long-term relationship potential\n\n")
	b.WriteString(`Return only a JSON array with match IDs and scores: [{"id": 1, "score": 85}, {"id": 2, "score": 72}, ...]`)

	return b.String()
}

func compatibilityPrompt(subject Subject, candidate Profile) string {
	var b strings.Builder

	b.WriteString("Analyze compatibility between these two dating profiles:\n\n")

	b.WriteString("Person 1:\n")
	fmt.Fprintf(&b, "- Age: %d\n", subject.Age)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(subject.Interests, ", "))
	fmt.Fprintf(&b, "- Profession: %s\n\n", subject.Profession)

	b.WriteString("Person 2:\n")
	fmt.Fprintf(&b, "- Age: %d\n", candidate.Age)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(candidate.Interests, ", "))
	fmt.Fprintf(&b, "- Profession: %s\n", candidate.Profession)
	fmt.Fprintf(&b, "- Bio: %s\n\n", candidate.Bio)

	b.WriteString("Rate compatibility from 0.0 to 1.0 based on:\n")
	b.WriteString("1. Shared interests\n")
	b.WriteString("2. Age compatibility\n")
	b.WriteString("3. Lifestyle alignment\n")
	b.WriteString("4. Communication potential\n\n")
	b.WriteString("Return only the numerical score (e.g., 0.85)")

	return b.String()
}

func insightsPrompt(subject Subject, top []Profile) string {
	var b strings.Builder

	b.WriteString("Based on this user profile and their top matches, provide 3 personalized dating insights:\n\n")

	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Age: %d\n", subject.Age)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(subject.Interests, ", "))
	fmt.Fprintf(&b, "- Profession: %s\n\n", subject.Profession)

	b.WriteString("Top Matches:\n")
	for _, m := range top {
		fmt.Fprintf(&b, "- %s: %s, interests: %s\n", m.Name, m.Profession, strings.Join(m.Interests, ", "))
	}

	b.WriteString("\nProvide 3 actionable insights about their dating patterns, compatibility trends, or profile optimization tips.\n")
	b.WriteString(`Return as a JSON array of strings: ["insight 1", "insight 2", "insight 3"]`)

	return b.String()
}
