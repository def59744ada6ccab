package handlers

import "net/http"

// NewHealthHandler returns a liveness probe handler.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.SuccessResponse
// @Router /api/health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
