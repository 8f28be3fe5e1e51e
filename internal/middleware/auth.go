package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/auth"
	"github.com/BuzzLyutic/task-auth-api/internal/model"
	"github.com/BuzzLyutic/task-auth-api/internal/repo"
	"github.com/BuzzLyutic/task-auth-api/pkg/respond"
)

type contextKey string

const userKey contextKey = "user"

type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// Authenticate requires a valid bearer token and re-reads the user it names,
// so a deleted account stops working before its token expires.
func Authenticate(tokens TokenValidator, users UserLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respond.Error(w, r, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := tokens.Validate(token)
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				respond.Error(w, r, http.StatusUnauthorized, "token expired")
				return
			case err != nil:
				respond.Error(w, r, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := users.GetByUsername(r.Context(), claims.Subject)
			if errors.Is(err, repo.ErrorNotFound) {
				respond.Error(w, r, http.StatusUnauthorized, "invalid token")
				return
			}
			if err != nil {
				logger.Error("failed to load token subject", zap.String("username", claims.Subject), zap.Error(err))
				respond.Error(w, r, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user attached by Authenticate.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
