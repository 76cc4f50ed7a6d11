package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (User, error)

	loginUsername string
	loginPassword string
}

func (service *stubAuthService) Login(ctx context.Context, username, password string) (User, error) {
	service.loginUsername = username
	service.loginPassword = password
	if service.loginFn != nil {
		return service.loginFn(ctx, username, password)
	}
	return User{ID: "u-1", Username: username, IsAdmin: true}, nil
}

type stubIssuer struct {
	issueFn func(user User) (string, error)
}

func (issuer *stubIssuer) Issue(user User) (string, error) {
	if issuer.issueFn != nil {
		return issuer.issueFn(user)
	}
	return "session-token", nil
}

func (issuer *stubIssuer) TTL() time.Duration {
	return time.Hour
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	return nil
}

func TestHandler_Login(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		handler := NewHandler(&stubAuthService{}, &stubIssuer{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Nil(t, sessionCookie(rec))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		service := &stubAuthService{loginFn: func(ctx context.Context, username, password string) (User, error) {
			return User{}, ErrorInvalidCredentials
		}}
		handler := NewHandler(service, &stubIssuer{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, sessionCookie(rec))
	})

	t.Run("sets the session cookie", func(t *testing.T) {
		service := &stubAuthService{}
		handler := NewHandler(service, &stubIssuer{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "admin", service.loginUsername)
		require.Equal(t, "secret", service.loginPassword)

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		require.Equal(t, "session-token", cookie.Value)
		require.True(t, cookie.HttpOnly)
		require.Equal(t, "/", cookie.Path)
		require.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)

		// El hash jamás viaja en la respuesta.
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("issuer failure", func(t *testing.T) {
		issuer := &stubIssuer{issueFn: func(user User) (string, error) {
			return "", errors.New("sign failed")
		}}
		handler := NewHandler(&stubAuthService{}, issuer)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Nil(t, sessionCookie(rec))
	})
}

func TestHandler_Logout(t *testing.T) {
	handler := NewHandler(&stubAuthService{}, &stubIssuer{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Equal(t, -1, cookie.MaxAge)
}
