package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
)

const (
	baseScore = 0.5
	minScore  = 0.3
	maxScore  = 1.0

	interestWeight   = 0.4
	ageWeight        = 0.2
	educationWeight  = 0.15
	professionWeight = 0.15
	noiseWeight      = 0.1
)

// Scorer computes local compatibility scores. The noise term comes from
// the random source, so a Fixed source makes scores reproducible.
type Scorer struct {
	random random.Source
}

// NewScorer creates a scorer. A nil source is seeded from the clock.
func NewScorer(src random.Source) *Scorer {
	if src == nil {
		src = random.New(0)
	}
	return &Scorer{random: src}
}

// Score returns the compatibility of candidate with subject in [0.3, 1]
func (s *Scorer) Score(subject Subject, candidate Profile) float64 {
	return s.Breakdown(subject, candidate).Score
}

// Breakdown scores candidate against subject and keeps every term.
// A term contributes only when both sides know the attribute.
func (s *Scorer) Breakdown(subject Subject, candidate Profile) Breakdown {
	var b Breakdown

	// 1. Interest overlap (40%)
	if len(subject.Interests) > 0 && len(candidate.Interests) > 0 {
		b.Interests = interestOverlap(subject.Interests, candidate.Interests) * interestWeight
	}

	// 2. Age proximity (20%)
	if subject.Age > 0 && candidate.Age > 0 {
		diff := math.Abs(float64(subject.Age - candidate.Age))
		b.Age = math.Max(0, (10-diff)/10) * ageWeight
	}

	// 3. Education proximity (15%)
	if subjectLevel, ok := EducationLevel(subject.Education); ok {
		if candidateLevel, ok := EducationLevel(candidate.Education); ok {
			diff := math.Abs(float64(subjectLevel - candidateLevel))
			b.Education = math.Max(0, (3-diff)/3) * educationWeight
		}
	}

	// 4. Profession (15%)
	if subject.Profession != "" && candidate.Profession != "" {
		professionScore := 0.5
		if strings.EqualFold(subject.Profession, candidate.Profession) {
			professionScore = 1
		}
		b.Profession = professionScore * professionWeight
	}

	// 5. Unknown factors (10%)
	b.Noise = s.random.Float64() * noiseWeight

	total := baseScore + b.Interests + b.Age + b.Education + b.Profession + b.Noise
	b.Score = math.Min(maxScore, math.Max(minScore, total))
	return b
}

// Rank scores every candidate and sorts them by descending compatibility.
// Equal scores keep their input order. The input slice is not modified.
func (s *Scorer) Rank(subject Subject, candidates []Profile) []Profile {
	ranked := make([]Profile, len(candidates))
	for i, candidate := range candidates {
		candidate.Compatibility = s.Score(subject, candidate)
		ranked[i] = candidate
	}

	SortByCompatibility(ranked)
	return ranked
}

// SortByCompatibility sorts profiles by descending compatibility, stable
func SortByCompatibility(profiles []Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Compatibility > profiles[j].Compatibility
	})
}

// interestOverlap counts subject interests that share a case-insensitive
// substring with any candidate interest, over the longer list
func interestOverlap(subject, candidate []string) float64 {
	folded := make([]string, len(candidate))
	for i, interest := range candidate {
		folded[i] = fold(interest)
	}

	common := 0
	for _, interest := range subject {
		mine := fold(interest)
		for _, theirs := range folded {
			if strings.Contains(theirs, mine) || strings.Contains(mine, theirs) {
				common++
				break
			}
		}
	}

	longest := len(subject)
	if len(candidate) > longest {
		longest = len(candidate)
	}
	return float64(common) / float64(longest)
}
