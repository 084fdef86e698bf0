package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-value", time.Hour, false)

	cookie := recordedCookie(t, rec)
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestSetSessionCookieSecureInProduction(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-value", time.Hour, true)

	assert.True(t, recordedCookie(t, rec).Secure)
}

func TestClearSessionCookieIsAlreadyExpired(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, false)

	cookie := recordedCookie(t, rec)
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
	assert.True(t, cookie.Expires.Before(time.Now()))
	assert.True(t, cookie.HttpOnly)

	// MaxAge < 0 must serialize as Max-Age=0 on the wire.
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestGetSessionTokenFromCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "token-value"})

	token, err := GetSessionTokenFromCookie(r)
	require.NoError(t, err)
	assert.Equal(t, "token-value", token)
}

func TestGetSessionTokenFromCookieMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)

	_, err := GetSessionTokenFromCookie(r)
	assert.ErrorIs(t, err, http.ErrNoCookie)
}
