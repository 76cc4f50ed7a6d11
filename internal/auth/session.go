package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL aplica si la config no define otra duración.
const DefaultSessionTTL = 24 * time.Hour

// CookieName es la cookie HttpOnly donde viaja el token de sesión.
const CookieName = "pos_session"

// ErrorInvalidSession cubre tokens ausentes, vencidos o con firma ajena.
var ErrorInvalidSession = errors.New("invalid session")

// SessionUser es la identidad verificada que viaja en la sesión.
type SessionUser struct {
	ID       string
	Username string
	IsAdmin  bool
}

type sessionClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Sessions emite y verifica tokens de sesión firmados.
// Al ser stateless no hay storage de sesiones que limpiar; la revocación
// es el vencimiento del token.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions crea el firmante de sesiones. ttl <= 0 usa DefaultSessionTTL.
func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{secret: secret, ttl: ttl, now: time.Now}
}

// TTL expone la duración para que el handler arme la cookie.
func (sessions *Sessions) TTL() time.Duration {
	return sessions.ttl
}

// Issue firma una sesión para la cuenta dada.
func (sessions *Sessions) Issue(user User) (string, error) {
	issued := sessions.now()
	claims := sessionClaims{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(sessions.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessions.secret)
}

// Verify valida firma y vencimiento y devuelve la identidad.
func (sessions *Sessions) Verify(token string) (SessionUser, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(token *jwt.Token) (any, error) { return sessions.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(sessions.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return SessionUser{}, ErrorInvalidSession
	}
	if claims.Subject == "" || claims.Username == "" {
		return SessionUser{}, ErrorInvalidSession
	}

	return SessionUser{
		ID:       claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
