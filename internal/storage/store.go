// Package storage persists per-user JSON documents (chat sessions, rolling
// stats, analysis history) behind a small key/value interface.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the documents kept per user
const (
	KeyChatSessions    = "chatSessions"
	KeyActiveSessionID = "activeSessionId"
	KeyUserStats       = "userStats"
	KeyAnalysisHistory = "analysisHistory"
	KeyRealtimeStats   = "realtimeStats"
	KeyUserProfile     = "userProfile"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrCorrupt  = errors.New("stored value is not valid JSON")
)

// Store is a per-user key/value store
type Store interface {
	Get(ctx context.Context, userID, key string) ([]byte, error)
	Set(ctx context.Context, userID, key string, value []byte) error
	Delete(ctx context.Context, userID, key string) error
	Close() error
}

// GetJSON loads key into v. It returns ErrNotFound when the key is absent
// and an error wrapping ErrCorrupt when the stored bytes do not decode.
func GetJSON(ctx context.Context, s Store, userID, key string, v interface{}) error {
	data, err := s.Get(ctx, userID, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// SetJSON stores v under key
func SetJSON(ctx context.Context, s Store, userID, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, userID, key, data)
}
