package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/imadgeboyega/kiekky-insights/internal/analysis"
	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
	"github.com/imadgeboyega/kiekky-insights/internal/storage"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrExportDisabled  = errors.New("chat export is not configured")
)

// StatsRecorder keeps the rolling typing and sentiment stats
type StatsRecorder interface {
	RecordMessage(ctx context.Context, userID string, wpm int, sentiment analysis.Sentiment) (analysis.UserStats, error)
	ResetStats(ctx context.Context, userID string) (analysis.UserStats, error)
	RestartSession(ctx context.Context, userID string) error
}

// Service defines the chat business logic
type Service interface {
	Bootstrap(ctx context.Context, userID string) (*Session, error)
	NewSession(ctx context.Context, userID string) (*Session, error)
	Sessions(ctx context.Context, userID string) ([]Session, error)
	Session(ctx context.Context, userID, sessionID string) (*Session, error)
	Activate(ctx context.Context, userID, sessionID string) (*Session, error)
	Send(ctx context.Context, userID, sessionID, text string, typingSeconds float64) (*SendResult, error)
	Delete(ctx context.Context, userID, sessionID string) (*Session, error)
	Clear(ctx context.Context, userID string) (*Session, error)
	Export(ctx context.Context, userID, sessionID string) (string, error)
}

// Options tunes the service. Zero values take the defaults.
type Options struct {
	Random random.Source
	Now    func() time.Time
	NewID  func() string
}

type service struct {
	repo     Repository
	stats    StatsRecorder
	exporter Exporter
	locks    *storage.UserLocks
	random   random.Source
	now      func() time.Time
	newID    func() string
}

// NewService creates the chat service. A nil exporter disables Export.
func NewService(repo Repository, stats StatsRecorder, exporter Exporter, opts Options) Service {
	if opts.Random == nil {
		opts.Random = random.New(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return "session_" + uuid.NewString() }
	}

	return &service{
		repo:     repo,
		stats:    stats,
		exporter: exporter,
		locks:    storage.NewUserLocks(),
		random:   opts.Random,
		now:      opts.Now,
		newID:    opts.NewID,
	}
}

// Bootstrap returns the active session, starting one when none is active
// or the stored pointer no longer matches a session
func (s *service) Bootstrap(ctx context.Context, userID string) (*Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sessions, err := s.repo.LoadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeID, err := s.repo.ActiveSessionID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := indexOf(sessions, activeID); i >= 0 {
		return &sessions[i], nil
	}
	return s.startSession(ctx, userID, sessions)
}

func (s *service) NewSession(ctx context.Context, userID string) (*Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sessions, err := s.repo.LoadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, userID, sessions)
}

// startSession prepends a fresh session with the welcome message, makes it
// active and restarts the stats session clock. Callers hold the user lock.
func (s *service) startSession(ctx context.Context, userID string, sessions []Session) (*Session, error) {
	now := s.now()
	session := Session{
		ID:        s.newID(),
		Title:     DefaultTitle,
		Timestamp: now,
		Messages: []Message{{
			ID:        1,
			Text:      WelcomeText,
			Sender:    SenderAI,
			Timestamp: now,
		}},
	}

	sessions = append([]Session{session}, sessions...)
	if err := s.repo.SaveSessions(ctx, userID, sessions); err != nil {
		return nil, err
	}
	if err := s.repo.SetActiveSessionID(ctx, userID, session.ID); err != nil {
		return nil, err
	}

	if err := s.stats.RestartSession(ctx, userID); err != nil {
		log.Warn("failed to restart stats session", "user", userID, "err", err)
	}

	return &session, nil
}

func (s *service) Sessions(ctx context.Context, userID string) ([]Session, error) {
	return s.repo.LoadSessions(ctx, userID)
}

func (s *service) Session(ctx context.Context, userID, sessionID string) (*Session, error) {
	sessions, err := s.repo.LoadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := indexOf(sessions, sessionID)
	if i < 0 {
		return nil, ErrSessionNotFound
	}
	return &sessions[i], nil
}

func (s *service) Activate(ctx context.Context, userID, sessionID string) (*Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	session, err := s.Session(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetActiveSessionID(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return session, nil
}

// Send appends the user message and the assistant reply to a session. An
// empty sessionID means the active session. A non-positive typing time
// leaves the message without a speed and the stats untouched.
func (s *service) Send(ctx context.Context, userID, sessionID, text string, typingSeconds float64) (*SendResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	// 1. Find the session
	sessions, err := s.repo.LoadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	if sessionID == "" {
		if sessionID, err = s.repo.ActiveSessionID(ctx, userID); err != nil {
			return nil, err
		}
	}

	i := indexOf(sessions, sessionID)
	if i < 0 {
		return nil, ErrSessionNotFound
	}
	session := &sessions[i]

	// 2. Measure the message
	wpm := analysis.EstimateWPM(text, typingSeconds)
	sentiment := analysis.ClassifySentiment(text)
	now := s.now()

	id := now.UnixMilli()
	if last := session.lastID(); id <= last {
		id = last + 1
	}

	result := &SendResult{
		SessionID: session.ID,
		Message: Message{
			ID:          id,
			Text:        text,
			Sender:      SenderUser,
			Timestamp:   now,
			TypingSpeed: wpm,
			Sentiment:   sentiment,
		},
	}

	// 3. Build the reply
	result.Analysis = AnalyzeMessage(wpm, sentiment, s.random)
	result.Reply = Message{
		ID:         id + 1,
		Text:       Reply(text, result.Analysis),
		Sender:     SenderAI,
		Timestamp:  now,
		AIAnalysis: replyAnalysis(result.Analysis),
	}

	// 4. Persist
	session.Messages = append(session.Messages, result.Message, result.Reply)
	if err := s.repo.SaveSessions(ctx, userID, sessions); err != nil {
		return nil, err
	}

	// 5. Update the rolling stats once the message is stored
	if wpm > 0 {
		stats, err := s.stats.RecordMessage(ctx, userID, wpm, sentiment)
		if err != nil {
			log.Warn("failed to update stats", "user", userID, "err", err)
		} else {
			result.Stats = &stats
		}
	}

	return result, nil
}

// Delete removes a session and returns the session active afterwards.
// Deleting the active session activates the first remaining one, or
// starts a new session when none remain.
func (s *service) Delete(ctx context.Context, userID, sessionID string) (*Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sessions, err := s.repo.LoadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := indexOf(sessions, sessionID)
	if i < 0 {
		return nil, ErrSessionNotFound
	}
	remaining := append(sessions[:i:i], sessions[i+1:]...)

	activeID, err := s.repo.ActiveSessionID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if activeID == sessionID && len(remaining) == 0 {
		return s.startSession(ctx, userID, remaining)
	}

	if err := s.repo.SaveSessions(ctx, userID, remaining); err != nil {
		return nil, err
	}

	if activeID == sessionID {
		if err := s.repo.SetActiveSessionID(ctx, userID, remaining[0].ID); err != nil {
			return nil, err
		}
		return &remaining[0], nil
	}

	if j := indexOf(remaining, activeID); j >= 0 {
		return &remaining[j], nil
	}
	return nil, nil
}

// Clear drops every session and the stats, then starts a new session
func (s *service) Clear(ctx context.Context, userID string) (*Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.stats.ResetStats(ctx, userID); err != nil {
		return nil, err
	}

	return s.startSession(ctx, userID, []Session{})
}

// Export writes the session through the configured exporter
func (s *service) Export(ctx context.Context, userID, sessionID string) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}

	session, err := s.Session(ctx, userID, sessionID)
	if err != nil {
		return "", err
	}

	data, err := EncodeSession(*session)
	if err != nil {
		return "", err
	}

	location, err := s.exporter.Save(ctx, exportKey(userID, sessionID), data)
	if err != nil {
		return "", err
	}

	log.Info("chat session exported", "user", userID, "session", sessionID, "bytes", len(data))
	return location, nil
}

func indexOf(sessions []Session, id string) int {
	if id == "" {
		return -1
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return i
		}
	}
	return -1
}
