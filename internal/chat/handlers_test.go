package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-insights/internal/auth"
	"github.com/imadgeboyega/kiekky-insights/internal/storage"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	env := newTestEnv(t, storage.NewMemoryStore(), nil)
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(env.chat), auth.NewMiddleware("secret", false).Authenticate)
	return r
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.GuestHeader, "guest-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var body envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestChatFlow(t *testing.T) {
	router := newTestRouter(t)

	// 1. Active session is created on first use
	rec := doRequest(router, http.MethodGet, "/api/v1/chat/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	active := decode[Session](t, rec).Data
	assert.Equal(t, "session_1", active.ID)

	// 2. Send a message
	rec = doRequest(router, http.MethodPost, "/api/v1/chat/sessions/session_1/messages",
		`{"text": "Can you analyze my chat style?", "typing_seconds": 6}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sent := decode[SendResult](t, rec).Data
	assert.Equal(t, 60, sent.Message.TypingSpeed)
	assert.Equal(t, SenderAI, sent.Reply.Sender)

	// 3. Blank text is rejected
	rec = doRequest(router, http.MethodPost, "/api/v1/chat/sessions/session_1/messages", `{"text": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 4. Unknown session
	rec = doRequest(router, http.MethodGet, "/api/v1/chat/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 5. New session and list
	rec = doRequest(router, http.MethodPost, "/api/v1/chat/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/chat/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sessions := decode[[]Session](t, rec).Data
	require.Len(t, sessions, 2)
	assert.Equal(t, "session_2", sessions[0].ID)
	assert.Len(t, sessions[1].Messages, 3)

	// 6. Delete the active session
	rec = doRequest(router, http.MethodDelete, "/api/v1/chat/sessions/session_2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decode[Session](t, rec)
	assert.Equal(t, "Session deleted", deleted.Message)
	assert.Equal(t, "session_1", deleted.Data.ID)

	// 7. Export is not configured
	rec = doRequest(router, http.MethodPost, "/api/v1/chat/sessions/session_1/export", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// 8. Clear everything
	rec = doRequest(router, http.MethodDelete, "/api/v1/chat/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session_3", decode[Session](t, rec).Data.ID)
}
