package handlers

import (
	"context"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// CurrentUserer defines the interface the me handler needs.
type CurrentUserer interface {
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// NewMeHandler returns an HTTP handler for the acting user's profile.
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.UserResponse "Current user"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Security SessionCookie
// @Router /api/auth/me [get]
func NewMeHandler(svc CurrentUserer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := svc.CurrentUser(r.Context(), claims.UserID)
		if err != nil {
			// The token verified but the account is gone or the
			// datastore failed. Either way the session is useless.
			logger.Log.Errorw("failed to load current user", "user_id", claims.UserID, "err", err)
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{User: user.Sanitized()})
	}
}
