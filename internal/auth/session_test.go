package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var sessionSecret = []byte("session-secret")

func TestSessions_IssueAndVerify(t *testing.T) {
	sessions := NewSessions(sessionSecret, time.Hour)

	token, err := sessions.Issue(User{ID: "u-1", Username: "admin", IsAdmin: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := sessions.Verify(token)

	require.NoError(t, err)
	require.Equal(t, SessionUser{ID: "u-1", Username: "admin", IsAdmin: true}, user)
}

func TestSessions_Verify_Expired(t *testing.T) {
	sessions := NewSessions(sessionSecret, time.Hour)

	token, err := sessions.Issue(User{ID: "u-1", Username: "admin"})
	require.NoError(t, err)

	sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = sessions.Verify(token)

	require.ErrorIs(t, err, ErrorInvalidSession)
}

func TestSessions_Verify_ForeignSecret(t *testing.T) {
	issuer := NewSessions([]byte("other"), time.Hour)
	verifier := NewSessions(sessionSecret, time.Hour)

	token, err := issuer.Issue(User{ID: "u-1", Username: "admin"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)

	require.ErrorIs(t, err, ErrorInvalidSession)
}

func TestSessions_Verify_Garbage(t *testing.T) {
	sessions := NewSessions(sessionSecret, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := sessions.Verify(token)
		require.ErrorIs(t, err, ErrorInvalidSession)
	}
}

func TestNewSessions_DefaultTTL(t *testing.T) {
	sessions := NewSessions(sessionSecret, 0)

	require.Equal(t, DefaultSessionTTL, sessions.TTL())
}
