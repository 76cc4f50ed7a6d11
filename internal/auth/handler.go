package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Lelo88/pos-inventory-golang/internal/httpx"
)

// ServiceAPI define lo que el handler necesita del service de auth.
type ServiceAPI interface {
	Login(ctx context.Context, username, password string) (User, error)
}

// IssuerAPI emite tokens de sesión para cuentas autenticadas.
type IssuerAPI interface {
	Issue(user User) (string, error)
	TTL() time.Duration
}

// Handler HTTP de login/logout.
type Handler struct {
	service  ServiceAPI
	sessions IssuerAPI
}

// NewHandler crea un handler de auth.
func NewHandler(service ServiceAPI, sessions IssuerAPI) *Handler {
	return &Handler{service: service, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login maneja POST /auth/login: valida credenciales y setea la cookie de
// sesión. La respuesta no incluye el token; viaja solo en la cookie HttpOnly.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	user, err := handler.service.Login(request.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrorInvalidCredentials) {
			httpx.Fail(writer, request, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
			return
		}
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	token, err := handler.sessions.Issue(user)
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(handler.sessions.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.OK(writer, request, http.StatusOK, user)
}

// Logout maneja POST /auth/logout: invalida la cookie del lado del cliente.
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.OK(writer, request, http.StatusOK, map[string]any{"logged_out": true})
}
