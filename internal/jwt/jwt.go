package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// Claims are the fields embedded in a session token.
type Claims struct {
	UserID string
	Email  string
}

// JWT issues and verifies signed session tokens.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// New creates a new JWT instance
func New(secretKey string, expiration time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a session token embedding the user id and email.
func (j *JWT) Generate(ctx context.Context, userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    now.Add(j.Exp).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// Parse verifies the token signature and expiry and returns the embedded
// claims. Any failure (malformed, tampered, expired, wrong key) comes back
// as an error; callers treat every error identically as "unauthenticated".
func (j *JWT) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return nil, errors.New("userId not found in token")
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: userID, Email: email}, nil
}

// GetTokenFromRequest extracts the session token from the request cookie.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", errors.New("session cookie missing")
	}
	return cookie.Value, nil
}
