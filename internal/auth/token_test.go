package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret")
	token := m.Sign("user-123")

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyRejectsTampering(t *testing.T) {
	m := NewManager("test-secret")
	token := m.Sign("user-123")

	cases := []string{
		"",
		"garbage",
		"a.b.c",
		token + "x",
		strings.Replace(token, ".", "x.", 1),
	}
	for _, tc := range cases {
		_, err := m.Verify(tc)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tc)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token := NewManager("secret-a").Sign("user-123")
	_, err := NewManager("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret")
	m.now = func() time.Time { return time.Now().Add(-TokenTTL - time.Hour) }
	token := m.Sign("user-123")

	m.now = time.Now
	_, err := m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserIDFromRequest(t *testing.T) {
	m := NewManager("test-secret")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.UserIDFromRequest(r)
	assert.ErrorIs(t, err, ErrInvalidToken, "missing cookie")

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(m.SessionCookie("user-9"))
	userID, err := m.UserIDFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
