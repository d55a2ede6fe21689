package matching

import (
	"context"
	"errors"

	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
	"github.com/imadgeboyega/kiekky-insights/internal/fallback"
)

// topMatchesForInsights is how many matches the insights prompt describes
const topMatchesForInsights = 3

var errNoInsights = errors.New("generated insights are empty")

// Service defines the matching business logic
type Service interface {
	GenerateMatches(ctx context.Context, subject Subject, prefs Preferences, candidates []Profile) ([]Profile, fallback.Source, error)
	AnalyzeCompatibility(ctx context.Context, subject Subject, candidate Profile) (CompatibilityResult, fallback.Source, error)
	Insights(ctx context.Context, subject Subject, matches []Profile) ([]string, fallback.Source, error)
	Filter(matches []Profile, filters Filters) []Profile
	RemoteStatus() fallback.Status
}

// availabilityChecker is implemented by generators that can tell whether
// they are usable before the first call
type availabilityChecker interface {
	Available(ctx context.Context) error
}

type service struct {
	generator Generator
	gate      *fallback.Gate
	scorer    *Scorer
	random    random.Source
}

// NewService creates the matching service. A nil generator scores locally.
func NewService(generator Generator, src random.Source, policy fallback.Policy) Service {
	if src == nil {
		src = random.New(0)
	}

	var probe fallback.ProbeFunc
	if generator != nil {
		probe = func(ctx context.Context) error { return nil }
		if checker, ok := generator.(availabilityChecker); ok {
			probe = checker.Available
		}
	}

	return &service{
		generator: generator,
		gate:      fallback.NewGate("generative", probe, policy),
		scorer:    NewScorer(src),
		random:    src,
	}
}

// GenerateMatches ranks candidates. The generative ranking scores every
// candidate; the local ranking first drops those outside the preferences.
func (s *service) GenerateMatches(ctx context.Context, subject Subject, prefs Preferences, candidates []Profile) ([]Profile, fallback.Source, error) {
	remote := func(ctx context.Context) ([]Profile, error) {
		text, err := s.generator.Generate(ctx, rankingPrompt(subject, prefs, candidates))
		if err != nil {
			return nil, err
		}
		scores, err := ParseScores(text)
		if err != nil {
			return nil, err
		}
		return applyScores(candidates, scores, s.random.Float64), nil
	}

	local := func() ([]Profile, error) {
		return s.scorer.Rank(subject, FilterByPreferences(candidates, prefs)), nil
	}

	ranked, source, err := fallback.Do(ctx, s.gate, remote, local)
	if err != nil {
		return nil, source, err
	}

	recordRanking(source, ranked)
	return ranked, source, nil
}

func (s *service) AnalyzeCompatibility(ctx context.Context, subject Subject, candidate Profile) (CompatibilityResult, fallback.Source, error) {
	remote := func(ctx context.Context) (CompatibilityResult, error) {
		text, err := s.generator.Generate(ctx, compatibilityPrompt(subject, candidate))
		if err != nil {
			return CompatibilityResult{}, err
		}
		score, err := ParseCompatibility(text)
		if err != nil {
			return CompatibilityResult{}, err
		}
		return CompatibilityResult{CandidateID: candidate.ID, Score: score}, nil
	}

	local := func() (CompatibilityResult, error) {
		breakdown := s.scorer.Breakdown(subject, candidate)
		return CompatibilityResult{
			CandidateID: candidate.ID,
			Score:       breakdown.Score,
			Breakdown:   &breakdown,
		}, nil
	}

	result, source, err := fallback.Do(ctx, s.gate, remote, local)
	if err != nil {
		return CompatibilityResult{}, source, err
	}

	recordCompatibility(source, result.Score)
	return result, source, nil
}

// Insights asks the generator about the top matches and falls back to
// insights derived from the matches. An empty match list never reaches
// the generator.
func (s *service) Insights(ctx context.Context, subject Subject, matches []Profile) ([]string, fallback.Source, error) {
	var remote func(context.Context) ([]string, error)
	if len(matches) > 0 {
		remote = func(ctx context.Context) ([]string, error) {
			top := matches
			if len(top) > topMatchesForInsights {
				top = top[:topMatchesForInsights]
			}
			text, err := s.generator.Generate(ctx, insightsPrompt(subject, top))
			if err != nil {
				return nil, err
			}
			insights, err := ParseInsights(text)
			if err != nil {
				return nil, err
			}
			if len(insights) == 0 {
				return nil, errNoInsights
			}
			return insights, nil
		}
	}

	local := func() ([]string, error) {
		return DefaultInsights(matches), nil
	}

	return fallback.Do(ctx, s.gate, remote, local)
}

func (s *service) Filter(matches []Profile, filters Filters) []Profile {
	return Filter(matches, filters)
}

func (s *service) RemoteStatus() fallback.Status {
	return s.gate.Status()
}
