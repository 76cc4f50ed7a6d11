package auth

import (
	"context"
	"net/http"

	"github.com/Lelo88/pos-inventory-golang/internal/httpx"
)

type contextKey struct{}

var userKey contextKey

// CurrentUser recupera la identidad inyectada por el middleware.
// ok es false fuera de rutas protegidas.
func CurrentUser(ctx context.Context) (SessionUser, bool) {
	user, ok := ctx.Value(userKey).(SessionUser)
	return user, ok
}

// SessionsAPI define lo que el middleware necesita para verificar sesiones.
type SessionsAPI interface {
	Verify(token string) (SessionUser, error)
}

// RequireAdmin protege rutas de administración: exige cookie de sesión
// válida y privilegio admin. La identidad queda en el contexto del request.
func RequireAdmin(sessions SessionsAPI) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(CookieName)
			if err != nil {
				httpx.Fail(writer, request, http.StatusUnauthorized, "unauthorized", "login required")
				return
			}

			user, err := sessions.Verify(cookie.Value)
			if err != nil {
				httpx.Fail(writer, request, http.StatusUnauthorized, "unauthorized", "login required")
				return
			}
			if !user.IsAdmin {
				httpx.Fail(writer, request, http.StatusForbidden, "forbidden", "admin privileges required")
				return
			}

			ctx := context.WithValue(request.Context(), userKey, user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
