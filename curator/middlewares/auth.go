// curator/middlewares/auth.go
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"curator/curator/auth"
	"curator/curator/config"
	"curator/curator/sources/psql/dao"
	"curator/curator/sources/psql/models"
)

type contextKey string

const UserKey contextKey = "current_user"

// AuthMiddleware re-validates the bearer token on every request and resolves
// it to a user. Missing, malformed or expired tokens reject the request;
// nothing is silently degraded.
func AuthMiddleware(cfg config.Config, userDAO *dao.UserDAO) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			username, err := auth.ValidateToken(parts[1], []byte(cfg.JWTSecret))
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			user, err := userDAO.GetUserByUsername(r.Context(), username)
			if err != nil || user == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser pulls the authenticated user the middleware stored on the
// request context.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
