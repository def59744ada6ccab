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

// SignUpper defines the interface the sign-up handler needs.
type SignUpper interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
}

// SignUpRequest represents the JSON body for account creation
// swagger:model SignUpRequest
type SignUpRequest struct {
	// Display name
	// required: true
	Name string `json:"name" validate:"required"`

	// Email
	// required: true
	Email string `json:"email" validate:"required,email"`

	// Password, minimum 8 characters
	// required: true
	Password string `json:"password" validate:"required,min=8"`
}

// NewSignUpHandler returns an HTTP handler for password account creation.
// @Summary Create a password-based account
// @Tags auth
// @Accept json
// @Produce json
// @Param signUpRequest body handlers.SignUpRequest true "Sign-up request"
// @Success 201 {object} handlers.UserResponse "Created user"
// @Failure 400 {object} handlers.ErrorResponse "Validation failure or email taken"
// @Router /api/auth/sign-up [post]
func NewSignUpHandler(svc SignUpper, sessions SessionMinter, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "Name, email and a password of at least 8 characters are required")
			return
		}

		user, err := svc.SignUp(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				writeError(w, http.StatusBadRequest, "Email already registered")
				return
			}
			logger.Log.Errorw("sign-up failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		token, err := sessions.Generate(r.Context(), user.ID, user.Email)
		if err != nil {
			logger.Log.Errorw("failed to mint session", "user_id", user.ID, "err", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		setSessionCookie(w, token, secureCookies)
		writeJSON(w, http.StatusCreated, UserResponse{User: user.Sanitized()})
	}
}
