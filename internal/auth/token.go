// Package auth issues and verifies the signed session tokens carried in the
// "token" cookie, and hashes account passwords.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// CookieName is the session cookie the API reads on every request.
	CookieName = "token"

	// TokenTTL matches the original seven day session lifetime.
	TokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired session token")

// Manager signs and verifies session tokens with an HMAC-SHA256 secret.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), now: time.Now}
}

// Sign produces a token binding the user id to an expiry timestamp.
// Format: base64url(userID:expiresUnix) "." base64url(hmac).
func (m *Manager) Sign(userID string) string {
	payload := userID + ":" + strconv.FormatInt(m.now().Add(TokenTTL).Unix(), 10)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + m.signature(encoded)
}

// Verify returns the user id a token was issued for, or ErrInvalidToken for
// malformed, tampered, or expired tokens.
func (m *Manager) Verify(token string) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(m.signature(encoded))) {
		return "", ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}
	userID, expStr, ok := strings.Cut(string(raw), ":")
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse expiry: %w", ErrInvalidToken)
	}
	if m.now().Unix() > exp {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// UserIDFromRequest extracts and verifies the session cookie.
// A missing cookie yields ErrInvalidToken.
func (m *Manager) UserIDFromRequest(r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrInvalidToken
	}
	return m.Verify(c.Value)
}

// SessionCookie builds the cookie carrying a freshly signed token.
func (m *Manager) SessionCookie(userID string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    m.Sign(userID),
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedCookie expires the session cookie.
func ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) signature(encoded string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
