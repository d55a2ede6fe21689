// internal/auth/middleware.go
// Bearer-token authentication that resolves the caller's user id

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/imadgeboyega/kiekky-insights/internal/common/utils"
)

type contextKey string

const (
	userIDKey        contextKey = "userID"
	authenticatedKey contextKey = "authenticated"
)

// GuestHeader carries a client-chosen id when authentication is optional
const GuestHeader = "X-User-ID"

// Middleware provides authentication middleware
type Middleware struct {
	secret   string
	required bool
}

// NewMiddleware creates a new auth middleware. When required is false,
// requests without a token fall back to the X-User-ID header, the user_id
// query parameter, or a fresh guest id.
func NewMiddleware(secret string, required bool) *Middleware {
	return &Middleware{
		secret:   secret,
		required: required,
	}
}

// Authenticate verifies the JWT token and adds the user id to the request context
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Extract token from Authorization header
		token := extractToken(r)
		if token == "" {
			if m.required {
				utils.ErrorResponse(w, "Missing or invalid authorization header", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), guestID(r))))
			return
		}

		// 2. Validate token
		claims, err := utils.ValidateJWT(token, m.secret)
		if err != nil {
			utils.ErrorResponse(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// 3. Only access tokens are accepted
		if claims.Type != "access" {
			utils.ErrorResponse(w, "Invalid token type", http.StatusUnauthorized)
			return
		}

		// 4. Pass to the next handler with the user id in context
		ctx := WithUserID(r.Context(), claims.UserID)
		ctx = context.WithValue(ctx, authenticatedKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken extracts the JWT token from the Authorization header
// Supports "Bearer <token>" format
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

func guestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(GuestHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.URL.Query().Get("user_id")); id != "" {
		return id
	}
	return "guest_" + uuid.NewString()
}

// WithUserID returns a copy of ctx carrying userID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// IsAuthenticated reports whether the context user id came from a verified token
func IsAuthenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(authenticatedKey).(bool)
	return ok
}

// ResolveUserID picks the user a request acts for: the token's user when
// authenticated, else the id the client supplied, else the context guest id
func ResolveUserID(ctx context.Context, supplied string) string {
	userID, _ := GetUserIDFromContext(ctx)
	if IsAuthenticated(ctx) {
		return userID
	}
	if supplied = strings.TrimSpace(supplied); supplied != "" {
		return supplied
	}
	return userID
}
