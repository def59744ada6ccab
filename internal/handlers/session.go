package handlers

import (
	"context"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/jwt"
)

// sessionMaxAge is 7 days, matching the token expiry.
const sessionMaxAge = 7 * 24 * 60 * 60

// SessionMinter issues session tokens after a successful authentication.
type SessionMinter interface {
	Generate(ctx context.Context, userID, email string) (string, error)
}

func setSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
