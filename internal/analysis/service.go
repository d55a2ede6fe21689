package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
	"github.com/imadgeboyega/kiekky-insights/internal/fallback"
	"github.com/imadgeboyega/kiekky-insights/internal/storage"
)

var ErrProfileNotFound = errors.New("profile not found")

// Remote is the analysis backend the service prefers when reachable
type Remote interface {
	Health(ctx context.Context) error
	Analyze(ctx context.Context, userID string, req AnalyzeRequest) (Result, error)
	RealtimeStats(ctx context.Context, userID string) (RealtimeStats, error)
	UpdateProfile(ctx context.Context, userID string, profile json.RawMessage) error
}

// Service defines the analysis business logic
type Service interface {
	Analyze(ctx context.Context, userID string, req AnalyzeRequest) (Result, fallback.Source, error)
	RealtimeStats(ctx context.Context, userID string) (RealtimeStats, fallback.Source, error)
	History(ctx context.Context, userID string) ([]Result, error)

	UpdateProfile(ctx context.Context, userID string, profile json.RawMessage) error
	Profile(ctx context.Context, userID string) (json.RawMessage, error)

	RecordMessage(ctx context.Context, userID string, wpm int, sentiment Sentiment) (UserStats, error)
	Stats(ctx context.Context, userID string) (UserStats, error)
	ResetStats(ctx context.Context, userID string) (UserStats, error)
	RestartSession(ctx context.Context, userID string) error

	Live(text string, elapsedSeconds float64) LiveEstimate
	RemoteStatus() fallback.Status
	Reprobe(ctx context.Context) fallback.Status
}

// Options tunes the service. Zero values take the defaults.
type Options struct {
	StatsWindow  int
	HistoryLimit int
	Policy       fallback.Policy
	Random       random.Source
	Now          func() time.Time
}

type service struct {
	store  storage.Store
	remote Remote
	gate   *fallback.Gate
	locks  *storage.UserLocks
	random random.Source
	now    func() time.Time
	window int
	limit  int
}

// NewService creates the analysis service. A nil remote runs fully local.
func NewService(store storage.Store, remote Remote, opts Options) Service {
	var probe fallback.ProbeFunc
	if remote != nil {
		probe = remote.Health
	}

	if opts.StatsWindow <= 0 {
		opts.StatsWindow = DefaultStatsWindow
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.Random == nil {
		opts.Random = random.New(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &service{
		store:  store,
		remote: remote,
		gate:   fallback.NewGate("analysis", probe, opts.Policy),
		locks:  storage.NewUserLocks(),
		random: opts.Random,
		now:    opts.Now,
		window: opts.StatsWindow,
		limit:  opts.HistoryLimit,
	}
}

func (s *service) Analyze(ctx context.Context, userID string, req AnalyzeRequest) (Result, fallback.Source, error) {
	remote := func(ctx context.Context) (Result, error) {
		return s.remote.Analyze(ctx, userID, req)
	}
	local := func() (Result, error) {
		return AnalyzeLocally(req.Text, req.TimeTaken, req.ResponseTime, s.random, s.now()), nil
	}

	result, source, err := fallback.Do(ctx, s.gate, remote, local)
	if err != nil {
		return Result{}, source, err
	}

	// A superseded request keeps nothing
	if err := ctx.Err(); err != nil {
		return Result{}, source, err
	}

	RecordAnalysis(source, result)

	// wpm 0 means no measurement and is never stored as a sample
	if result.TypingAnalysis.WPM <= 0 {
		return result, source, nil
	}

	// History is a backup; a failed write does not fail the analysis
	if err := s.appendHistory(ctx, userID, result); err != nil {
		log.Warn("failed to store analysis", "user", userID, "err", err)
	}

	return result, source, nil
}

func (s *service) RealtimeStats(ctx context.Context, userID string) (RealtimeStats, fallback.Source, error) {
	remote := func(ctx context.Context) (RealtimeStats, error) {
		stats, err := s.remote.RealtimeStats(ctx, userID)
		if err != nil {
			return RealtimeStats{}, err
		}
		if err := storage.SetJSON(ctx, s.store, userID, storage.KeyRealtimeStats, stats); err != nil {
			log.Warn("failed to cache realtime stats", "user", userID, "err", err)
		}
		return stats, nil
	}

	local := func() (RealtimeStats, error) {
		return s.localRealtimeStats(ctx, userID)
	}

	return fallback.Do(ctx, s.gate, remote, local)
}

// localRealtimeStats prefers the last stats cached from the remote and
// otherwise derives them from the stored history
func (s *service) localRealtimeStats(ctx context.Context, userID string) (RealtimeStats, error) {
	var cached RealtimeStats
	err := storage.GetJSON(ctx, s.store, userID, storage.KeyRealtimeStats, &cached)
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn("discarding corrupt realtime stats", "user", userID, "err", err)
	case !errors.Is(err, storage.ErrNotFound):
		return RealtimeStats{}, err
	}

	history, err := s.History(ctx, userID)
	if err != nil {
		return RealtimeStats{}, err
	}
	return ComputeRealtimeStats(history, s.now()), nil
}

func (s *service) History(ctx context.Context, userID string) ([]Result, error) {
	var history []Result
	err := storage.GetJSON(ctx, s.store, userID, storage.KeyAnalysisHistory, &history)
	switch {
	case err == nil:
		return history, nil
	case errors.Is(err, storage.ErrNotFound):
		return []Result{}, nil
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn("discarding corrupt analysis history", "user", userID, "err", err)
		return []Result{}, nil
	default:
		return nil, err
	}
}

func (s *service) appendHistory(ctx context.Context, userID string, result Result) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	history, err := s.History(ctx, userID)
	if err != nil {
		return err
	}
	return storage.SetJSON(ctx, s.store, userID, storage.KeyAnalysisHistory, AppendHistory(history, result, s.limit))
}

// UpdateProfile forwards the profile to the remote when it is enabled and
// always keeps a local copy
func (s *service) UpdateProfile(ctx context.Context, userID string, profile json.RawMessage) error {
	if !json.Valid(profile) {
		return fmt.Errorf("profile is not valid JSON")
	}

	remote := func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.remote.UpdateProfile(ctx, userID, profile)
	}
	local := func() (struct{}, error) { return struct{}{}, nil }
	if _, source, err := fallback.Do(ctx, s.gate, remote, local); err != nil || source == fallback.SourceLocal {
		log.Debug("profile kept locally only", "user", userID, "source", source, "err", err)
	}

	return s.store.Set(ctx, userID, storage.KeyUserProfile, profile)
}

func (s *service) Profile(ctx context.Context, userID string) (json.RawMessage, error) {
	data, err := s.store.Get(ctx, userID, storage.KeyUserProfile)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (s *service) RecordMessage(ctx context.Context, userID string, wpm int, sentiment Sentiment) (UserStats, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}

	stats.Append(wpm, sentiment, s.window, s.now())
	if err := storage.SetJSON(ctx, s.store, userID, storage.KeyUserStats, stats); err != nil {
		return UserStats{}, err
	}
	return stats, nil
}

func (s *service) Stats(ctx context.Context, userID string) (UserStats, error) {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}
	stats.Refresh(s.now())
	return stats, nil
}

func (s *service) ResetStats(ctx context.Context, userID string) (UserStats, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	stats := NewUserStats(s.now())
	if err := storage.SetJSON(ctx, s.store, userID, storage.KeyUserStats, stats); err != nil {
		return UserStats{}, err
	}
	return stats, nil
}

// RestartSession restarts the session clock and keeps the samples
func (s *service) RestartSession(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return err
	}
	stats.SessionStart = s.now()
	stats.SessionDuration = 0
	return storage.SetJSON(ctx, s.store, userID, storage.KeyUserStats, stats)
}

func (s *service) loadStats(ctx context.Context, userID string) (UserStats, error) {
	var stats UserStats
	err := storage.GetJSON(ctx, s.store, userID, storage.KeyUserStats, &stats)
	switch {
	case err == nil:
		if stats.TypingSpeeds == nil {
			stats.TypingSpeeds = []int{}
		}
		if stats.Sentiments == nil {
			stats.Sentiments = []Sentiment{}
		}
		if stats.DominantSentiment == "" {
			stats.DominantSentiment = SentimentNeutral
		}
		return stats, nil
	case errors.Is(err, storage.ErrNotFound):
		return NewUserStats(s.now()), nil
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn("discarding corrupt user stats", "user", userID, "err", err)
		return NewUserStats(s.now()), nil
	default:
		return UserStats{}, err
	}
}

func (s *service) Live(text string, elapsedSeconds float64) LiveEstimate {
	return LiveEstimate{
		WordsPerMinute: EstimateWPM(text, elapsedSeconds),
		Sentiment:      ClassifySentiment(text),
	}
}

func (s *service) RemoteStatus() fallback.Status {
	return s.gate.Status()
}

func (s *service) Reprobe(ctx context.Context) fallback.Status {
	s.gate.Reprobe(ctx)
	return s.gate.Status()
}
