package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/imadgeboyega/kiekky-insights/internal/storage"
)

// Repository defines chat persistence
type Repository interface {
	LoadSessions(ctx context.Context, userID string) ([]Session, error)
	SaveSessions(ctx context.Context, userID string, sessions []Session) error
	ActiveSessionID(ctx context.Context, userID string) (string, error)
	SetActiveSessionID(ctx context.Context, userID, sessionID string) error
	DeleteAll(ctx context.Context, userID string) error
}

type repository struct {
	store storage.Store
}

// NewRepository creates a chat repository on top of a document store
func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

// LoadSessions returns the stored sessions, newest first. Missing or
// corrupt data reads as no sessions.
func (r *repository) LoadSessions(ctx context.Context, userID string) ([]Session, error) {
	var sessions []Session
	err := storage.GetJSON(ctx, r.store, userID, storage.KeyChatSessions, &sessions)
	switch {
	case err == nil:
		return sessions, nil
	case errors.Is(err, storage.ErrNotFound):
		return []Session{}, nil
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn("discarding corrupt chat sessions", "user", userID, "err", err)
		return []Session{}, nil
	default:
		return nil, err
	}
}

func (r *repository) SaveSessions(ctx context.Context, userID string, sessions []Session) error {
	return storage.SetJSON(ctx, r.store, userID, storage.KeyChatSessions, sessions)
}

// ActiveSessionID returns "" when no session is active
func (r *repository) ActiveSessionID(ctx context.Context, userID string) (string, error) {
	data, err := r.store.Get(ctx, userID, storage.KeyActiveSessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (r *repository) SetActiveSessionID(ctx context.Context, userID, sessionID string) error {
	return r.store.Set(ctx, userID, storage.KeyActiveSessionID, []byte(sessionID))
}

// DeleteAll removes sessions and the active session pointer
func (r *repository) DeleteAll(ctx context.Context, userID string) error {
	for _, key := range []string{storage.KeyChatSessions, storage.KeyActiveSessionID} {
		if err := r.store.Delete(ctx, userID, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return nil
}
