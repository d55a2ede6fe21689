package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-insights/internal/common/utils"
)

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(userID))
	})
}

func TestAuthenticateWithToken(t *testing.T) {
	token, err := utils.GenerateJWT("alice", "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	NewMiddleware("secret", true).Authenticate(echoUser(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthenticateRequiredRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	NewMiddleware("secret", true).Authenticate(echoUser(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	NewMiddleware("secret", false).Authenticate(echoUser(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateOptionalUsesGuestHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(GuestHeader, "browser-1")
	rec := httptest.NewRecorder()

	NewMiddleware("secret", false).Authenticate(echoUser(t)).ServeHTTP(rec, req)

	assert.Equal(t, "browser-1", rec.Body.String())
}

func TestAuthenticateOptionalUsesQueryThenGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?user_id=bob", nil)
	rec := httptest.NewRecorder()
	NewMiddleware("secret", false).Authenticate(echoUser(t)).ServeHTTP(rec, req)
	assert.Equal(t, "bob", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	NewMiddleware("secret", false).Authenticate(echoUser(t)).ServeHTTP(rec, req)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "guest_"))
}

func TestResolveUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "guest_1")
	assert.Equal(t, "body-user", ResolveUserID(ctx, "body-user"))
	assert.Equal(t, "guest_1", ResolveUserID(ctx, "  "))

	authed := context.WithValue(ctx, authenticatedKey, true)
	assert.True(t, IsAuthenticated(authed))
	assert.Equal(t, "guest_1", ResolveUserID(authed, "someone-else"))
}
