package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "session_token"

const loginPath = "/login"

var (
	errNoToken       = errors.New("no session token")
	errBadAuthHeader = errors.New("malformed authorization header")
)

// SessionResolver maps a token to its live session and user.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*entity.Session, *entity.User, error)
}

// AuthSession requires a valid session token, sent as "Bearer <token>" or in
// the session cookie.
func AuthSession(sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := requestToken(r)
			if errors.Is(err, errBadAuthHeader) {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			if err != nil {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			ctx, err := resolve(r.Context(), sessions, token)
			if err != nil {
				if errors.Is(err, usecase.ErrInvalidSession) {
					logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession attaches the user when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalSession(sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, err := requestToken(r); err == nil {
				ctx, err := resolve(r.Context(), sessions, token)
				if err == nil {
					r = r.WithContext(ctx)
				} else if !errors.Is(err, usecase.ErrInvalidSession) {
					logger.Warn("Optional session lookup failed", zap.Error(err))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PageSession guards HTML pages. Requests without a usable token are
// redirected to the login page.
func PageSession(sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := requestToken(r)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx, err := resolve(r.Context(), sessions, token)
			if err != nil {
				if !errors.Is(err, usecase.ErrInvalidSession) {
					logger.Error("Failed to validate page session", zap.Error(err))
				}
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the role set by AuthSession to be admin.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireAdmin(logger, func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseForbidden(w, "Admin access required")
	})
}

// AdminPage is Admin for HTML pages: non-admins go back to the login page.
func AdminPage(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireAdmin(logger, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	})
}

func requireAdmin(logger *zap.Logger, deny http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				deny(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestToken prefers the Authorization header and falls back to the
// session cookie.
func requestToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := bearerToken(header)
		if !ok {
			return "", errBadAuthHeader
		}
		return token, nil
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errNoToken
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

func resolve(ctx context.Context, sessions SessionResolver, token string) (context.Context, error) {
	_, user, err := sessions.CurrentSession(ctx, token)
	if err != nil {
		return nil, err
	}
	ctx = utils.SetUserContext(ctx, user.ID, string(user.Role))
	ctx = utils.SetTokenContext(ctx, token)
	return ctx, nil
}
