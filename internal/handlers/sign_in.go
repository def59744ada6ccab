package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// SignInner defines the interface the sign-in handler needs.
type SignInner interface {
	SignIn(ctx context.Context, email, password string) (*models.User, error)
}

// SignInRequest represents the JSON body for password sign-in
// swagger:model SignInRequest
type SignInRequest struct {
	// Email
	// required: true
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	Password string `json:"password" validate:"required"`
}

// UserResponse wraps the acting user with the password hash stripped
// swagger:model UserResponse
type UserResponse struct {
	User models.User `json:"user"`
}

// NewSignInHandler returns an HTTP handler for password sign-in.
// @Summary Sign in with email and password
// @Description Authenticate a password-based user and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param signInRequest body handlers.SignInRequest true "Sign-in request"
// @Success 200 {object} handlers.UserResponse "Authenticated user"
// @Failure 400 {object} handlers.ErrorResponse "Missing email or password"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Router /api/auth/sign-in [post]
func NewSignInHandler(svc SignInner, sessions SessionMinter, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "Email and password required")
			return
		}

		user, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			logger.Log.Errorw("sign-in failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		token, err := sessions.Generate(r.Context(), user.ID, user.Email)
		if err != nil {
			logger.Log.Errorw("failed to mint session", "user_id", user.ID, "err", err)
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		setSessionCookie(w, token, secureCookies)
		writeJSON(w, http.StatusOK, UserResponse{User: user.Sanitized()})
	}
}
