package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the session token. The
// original deployment called this cookie "jwt"; the name here reflects what
// it actually holds.
const SessionCookieName = "charla_session"

// SetSessionCookie attaches the session token to the response as an
// HTTP-only cookie. Secure is only set in production so local development
// over plain HTTP keeps working.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration, isProduction bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie. MaxAge < 0 serializes as
// Max-Age=0, so a replayed response can never resurrect the session.
func ClearSessionCookie(w http.ResponseWriter, isProduction bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetSessionTokenFromCookie reads the session token from the request cookie.
func GetSessionTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
