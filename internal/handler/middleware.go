package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/presyo/backend/internal/logger"
	"github.com/presyo/backend/internal/service"
)

type contextKey string

// AdminIDKey is the context key for the authenticated admin's ID.
const AdminIDKey contextKey = "adminID"

// SessionIDKey is the context key for the shopping list session ID.
const SessionIDKey contextKey = "sessionID"

// SessionHeader carries the anonymous shopping list session token. The server
// mints one when the client does not present it.
const SessionHeader = "X-Session-ID"

// AuthMiddleware validates the Bearer token on admin routes and puts the
// admin ID into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		adminID, err := service.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID returns the authenticated admin's ID from the context, or
// uuid.Nil outside an authenticated request.
func GetAdminID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(AdminIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// SessionMiddleware resolves the shopping list session. A missing or
// malformed header gets a freshly minted session ID, echoed back so the
// client can persist it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(r.Header.Get(SessionHeader))
		if err != nil {
			sessionID = uuid.New()
		}
		w.Header().Set(SessionHeader, sessionID.String())

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		ctx = logger.WithSessionID(ctx, sessionID.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID returns the shopping list session ID from the context.
func GetSessionID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(SessionIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
