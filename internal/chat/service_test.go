package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-insights/internal/analysis"
	"github.com/imadgeboyega/kiekky-insights/internal/common/database"
	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
	"github.com/imadgeboyega/kiekky-insights/internal/storage"
)

type testEnv struct {
	chat  Service
	stats analysis.Service
	store storage.Store
	clock *time.Time
}

func newTestEnv(t *testing.T, store storage.Store, exporter Exporter) *testEnv {
	t.Helper()

	clock := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	env := &testEnv{store: store, clock: &clock}
	now := func() time.Time { return *env.clock }

	env.stats = analysis.NewService(store, nil, analysis.Options{Random: random.Fixed(0.5), Now: now})

	ids := 0
	env.chat = NewService(NewRepository(store), env.stats, exporter, Options{
		Random: random.Fixed(0.5),
		Now:    now,
		NewID: func() string {
			ids++
			return fmt.Sprintf("session_%d", ids)
		},
	})
	return env
}

func TestBootstrapStartsWelcomeSession(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	session, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "session_1", session.ID)
	assert.Equal(t, DefaultTitle, session.Title)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, int64(1), session.Messages[0].ID)
	assert.Equal(t, SenderAI, session.Messages[0].Sender)
	assert.Equal(t, WelcomeText, session.Messages[0].Text)

	again, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, again.ID)

	sessions, err := env.chat.Sessions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestBootstrapRecoversFromCorruptSessions(t *testing.T) {
	store := storage.NewMemoryStore()
	env := newTestEnv(t, store, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", storage.KeyChatSessions, []byte("{not json")))
	require.NoError(t, store.Set(ctx, "u1", storage.KeyActiveSessionID, []byte("session_old")))

	session, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "session_1", session.ID)
}

func TestNewSessionIsPrependedAndActive(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)

	// the stats session clock restarts with every new session
	*env.clock = env.clock.Add(30 * time.Minute)
	created, err := env.chat.NewSession(ctx, "u1")
	require.NoError(t, err)

	sessions, err := env.chat.Sessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, created.ID, sessions[0].ID)

	active, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)

	stats, err := env.stats.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stats.SessionStart.Equal(*env.clock))
}

func TestSend(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	session, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)

	result, err := env.chat.Send(ctx, "u1", session.ID, "Can you help me with my profile?", 6)
	require.NoError(t, err)

	assert.Equal(t, session.ID, result.SessionID)
	assert.Equal(t, SenderUser, result.Message.Sender)
	assert.Equal(t, 70, result.Message.TypingSpeed)
	assert.Equal(t, analysis.SentimentCurious, result.Message.Sentiment)
	assert.Equal(t, env.clock.UnixMilli(), result.Message.ID)

	assert.Equal(t, SenderAI, result.Reply.Sender)
	assert.Equal(t, result.Message.ID+1, result.Reply.ID)
	assert.Contains(t, result.Reply.Text, "optimize your dating profile")
	require.NotNil(t, result.Reply.AIAnalysis)
	assert.Equal(t, 0.85, result.Reply.AIAnalysis.Confidence)
	assert.Equal(t, "engaged", result.Reply.AIAnalysis.Engagement)
	assert.Len(t, result.Reply.AIAnalysis.Suggestions, 3)

	assert.Equal(t, "high", result.Analysis.ConfidenceLevel)
	assert.InDelta(t, 0.85, result.Analysis.CompatibilityScore, 1e-9)

	require.NotNil(t, result.Stats)
	assert.Equal(t, 1, result.Stats.TotalMessages)
	assert.Equal(t, 70, result.Stats.AverageTypingSpeed)

	stored, err := env.chat.Session(ctx, "u1", session.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 3)

	// same instant, ids keep increasing
	second, err := env.chat.Send(ctx, "u1", "", "ok", 1)
	require.NoError(t, err)
	assert.Equal(t, result.Reply.ID+1, second.Message.ID)
}

// sessionWriteFailer fails writes of the chat sessions once armed
type sessionWriteFailer struct {
	storage.Store
	armed bool
}

func (f *sessionWriteFailer) Set(ctx context.Context, userID, key string, value []byte) error {
	if f.armed && key == storage.KeyChatSessions {
		return errors.New("disk full")
	}
	return f.Store.Set(ctx, userID, key, value)
}

func TestSendFailedSaveLeavesStatsAlone(t *testing.T) {
	store := &sessionWriteFailer{Store: storage.NewMemoryStore()}
	env := newTestEnv(t, store, nil)
	ctx := context.Background()

	session, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)

	store.armed = true
	_, err = env.chat.Send(ctx, "u1", session.ID, "Can you help me with my profile?", 6)
	require.Error(t, err)

	stats, err := env.stats.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalMessages)
	assert.Empty(t, stats.TypingSpeeds)
}

func TestSendRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	session, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)

	_, err = env.chat.Send(ctx, "u1", session.ID, "   \n", 3)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = env.chat.Send(ctx, "u1", "session_missing", "hello", 3)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSendWithoutTypingTimeSkipsStats(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)

	result, err := env.chat.Send(ctx, "u1", "", "pasted text", 0)
	require.NoError(t, err)
	assert.Zero(t, result.Message.TypingSpeed)
	assert.Nil(t, result.Stats)

	stats, err := env.stats.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalMessages)
	assert.Empty(t, stats.TypingSpeeds)
}

func TestDeleteActiveSession(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	first, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	second, err := env.chat.NewSession(ctx, "u1")
	require.NoError(t, err)

	// the first remaining session takes over
	active, err := env.chat.Delete(ctx, "u1", second.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)

	// deleting the last session starts a new one
	active, err = env.chat.Delete(ctx, "u1", first.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "session_3", active.ID)

	sessions, err := env.chat.Sessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "session_3", sessions[0].ID)
}

func TestDeleteInactiveSession(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	first, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	second, err := env.chat.NewSession(ctx, "u1")
	require.NoError(t, err)

	active, err := env.chat.Delete(ctx, "u1", first.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	_, err = env.chat.Delete(ctx, "u1", first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestActivate(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	first, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	_, err = env.chat.NewSession(ctx, "u1")
	require.NoError(t, err)

	_, err = env.chat.Activate(ctx, "u1", first.ID)
	require.NoError(t, err)

	active, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	_, err = env.chat.Activate(ctx, "u1", "session_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestClear(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	_, err = env.chat.NewSession(ctx, "u1")
	require.NoError(t, err)
	_, err = env.chat.Send(ctx, "u1", "", "I love this!!", 2)
	require.NoError(t, err)

	fresh, err := env.chat.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "session_3", fresh.ID)

	sessions, err := env.chat.Sessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Len(t, sessions[0].Messages, 1)

	stats, err := env.stats.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalMessages)
	assert.Equal(t, analysis.SentimentNeutral, stats.DominantSentiment)
}

func TestSessionRoundTripThroughSQLite(t *testing.T) {
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	store, err := storage.NewSQLStore(db)
	require.NoError(t, err)
	defer store.Close()

	env := newTestEnv(t, store, nil)
	ctx := context.Background()

	session, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	sent, err := env.chat.Send(ctx, "u1", session.ID, "What do you think?", 4)
	require.NoError(t, err)

	// a second service over the same store sees the same conversation
	reloaded, err := NewService(NewRepository(store), env.stats, nil, Options{}).Session(ctx, "u1", session.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Messages, 3)

	want := []Message{session.Messages[0], sent.Message, sent.Reply}
	for i, msg := range reloaded.Messages {
		assert.Equal(t, want[i].ID, msg.ID)
		assert.Equal(t, want[i].Text, msg.Text)
		assert.Equal(t, want[i].Sender, msg.Sender)
		assert.Equal(t, want[i].Sentiment, msg.Sentiment)
		assert.Equal(t, want[i].TypingSpeed, msg.TypingSpeed)
		assert.True(t, want[i].Timestamp.Equal(msg.Timestamp))
	}
	assert.Equal(t, analysis.SentimentCurious, reloaded.Messages[1].Sentiment)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	env := newTestEnv(t, storage.NewMemoryStore(), NewLocalExporter(dir))
	ctx := context.Background()

	session, err := env.chat.Bootstrap(ctx, "u1")
	require.NoError(t, err)
	_, err = env.chat.Send(ctx, "u1", session.ID, "Any tips for a first date?", 5)
	require.NoError(t, err)

	location, err := env.chat.Export(ctx, "u1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chat-exports", "u1", session.ID+ExportExt), location)

	f, err := os.Open(location)
	require.NoError(t, err)
	defer f.Close()

	exported, err := DecodeSession(f)
	require.NoError(t, err)
	assert.Equal(t, session.ID, exported.ID)
	require.Len(t, exported.Messages, 3)
	assert.Equal(t, "Any tips for a first date?", exported.Messages[1].Text)

	_, err = env.chat.Export(ctx, "u1", "session_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExportDisabled(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryStore(), nil)

	_, err := env.chat.Export(context.Background(), "u1", "session_1")
	assert.ErrorIs(t, err, ErrExportDisabled)
}
