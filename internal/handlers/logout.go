package handlers

import "net/http"

// NewLogoutHandler returns an HTTP handler that clears the session cookie.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.SuccessResponse
// @Router /api/auth/logout [post]
func NewLogoutHandler(secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearSessionCookie(w, secureCookies)
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

// SuccessResponse is the body of mutations with nothing else to return
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success"`
}
