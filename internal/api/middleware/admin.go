package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"
)

// AdminTokenHeader заголовок с токеном администратора салона
const AdminTokenHeader = "X-Admin-Token"

type adminKey struct{}

// Admin помечает запрос как административный, если токен совпал.
// Пустой token отключает административный режим.
func Admin(token string, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminTokenHeader)
			if provided != "" {
				if token != "" && subtle.ConstantTimeCompare([]byte(provided), []byte(token)) == 1 {
					r = r.WithContext(context.WithValue(r.Context(), adminKey{}, true))
				} else {
					logger.Warn("Invalid admin token: path=%s", r.URL.Path)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin true, если запрос прошел проверку токена администратора
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminKey{}).(bool)
	return admin
}
