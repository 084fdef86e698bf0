package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguayodev/charla-api/internal/httputil"
)

func newAuthedProbe(t *testing.T) (*Middleware, *PasetoService, http.Handler, *struct {
	userID uuid.UUID
	email  string
	called bool
}) {
	t.Helper()

	tokens, err := NewPasetoService(testTokenKey)
	require.NoError(t, err)
	mw := NewMiddleware(tokens)

	captured := &struct {
		userID uuid.UUID
		email  string
		called bool
	}{}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.called = true
		captured.userID, _ = GetUserIDFromContext(r.Context())
		captured.email, _ = GetUserEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return mw, tokens, mw.RequireAuth(next), captured
}

func responseCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestRequireAuthWithValidCookie(t *testing.T) {
	_, tokens, handler, captured := newAuthedProbe(t)

	userID := uuid.New()
	token, err := tokens.CreateToken(userID, "ana@x.com", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.called)
	assert.Equal(t, userID, captured.userID)
	assert.Equal(t, "ana@x.com", captured.email)
}

func TestRequireAuthBearerFallback(t *testing.T) {
	_, tokens, handler, captured := newAuthedProbe(t)

	userID := uuid.New()
	token, err := tokens.CreateToken(userID, "ana@x.com", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, captured.userID)
}

func TestRequireAuthMissingCredential(t *testing.T) {
	_, _, handler, captured := newAuthedProbe(t)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeMissingAuth, responseCode(t, rec))
	assert.False(t, captured.called)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	_, _, handler, _ := newAuthedProbe(t)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	r.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeInvalidAuthHeader, responseCode(t, rec))
}

func TestRequireAuthExpiredToken(t *testing.T) {
	_, tokens, handler, captured := newAuthedProbe(t)

	token, err := tokens.CreateToken(uuid.New(), "ana@x.com", -time.Minute)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeTokenExpired, responseCode(t, rec))
	assert.False(t, captured.called)
}

func TestRequireAuthGarbageToken(t *testing.T) {
	_, _, handler, _ := newAuthedProbe(t)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeInvalidToken, responseCode(t, rec))
}
