package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/jwt"
	"github.com/isodigm/blogcms/internal/logger"
	"github.com/isodigm/blogcms/internal/utils"
)

// Key to store the authenticated user in the request context. Exported so
// handler tests can plant a user without running the full middleware.
type contextKey int

const UserKey contextKey = 0

// UserLoader fetches the current account record so admin checks reflect the
// database, not a possibly stale token claim.
type UserLoader interface {
	User(id domain.UserId) (domain.User, error)
}

// RequireAuth rejects requests without a valid Bearer token and stores the
// account in the request context.
func RequireAuth(tokens jwt.TokenService, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(r, tokens, users)
			if err != nil {
				utils.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireAdmin is RequireAuth plus an admin check against the stored account,
// so revoking admin takes effect before the token expires.
func RequireAdmin(tokens jwt.TokenService, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(r, tokens, users)
			if err != nil {
				utils.WriteError(w, err)
				return
			}
			if !user.Admin {
				logger.Log.Warn("admin route rejected", "user_id", user.Id, "path", r.URL.Path)
				utils.WriteError(w, errors.Forbidden("Admin access required"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// OptionalAuth attaches the account when a valid token is present and lets
// the request through anonymously otherwise. A present but invalid token is
// still an error; silently downgrading it would mask client bugs.
func OptionalAuth(tokens jwt.TokenService, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := authenticate(r, tokens, users)
			if err != nil {
				utils.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// authenticate never logs the token itself, only the outcome.
func authenticate(r *http.Request, tokens jwt.TokenService, users UserLoader) (domain.User, error) {
	token, err := bearerToken(r)
	if err != nil {
		logger.Log.Warn("request without usable bearer token", "path", r.URL.Path, "remote", r.RemoteAddr)
		return domain.User{}, err
	}

	userId, _, err := tokens.DecodeToken(token)
	if err != nil {
		logger.Log.Warn("bearer token rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
		return domain.User{}, err
	}

	user, err := users.User(userId)
	if err != nil {
		if errors.IsNotFound(err) {
			// account deleted after the token was issued
			return domain.User{}, errors.Unauthorized("Invalid or expired token")
		}
		return domain.User{}, err
	}
	return user, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", &errors.ErrorWithStatusCode{
			Message:    "Authorization header is required",
			StatusCode: http.StatusUnauthorized,
			Code:       errors.CodeMissingToken,
		}
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", &errors.ErrorWithStatusCode{
			Message:    "Authorization header must be of form 'Bearer <token>'",
			StatusCode: http.StatusUnauthorized,
			Code:       errors.CodeMissingToken,
		}
	}
	return token, nil
}

func withUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, UserKey, &user)
}

// GetUserFromContext returns the authenticated account, or nil for anonymous
// requests.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
