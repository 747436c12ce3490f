package access

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SagarNRao/agile-lab2-startup-market/pkg/response"
)

// Handler handles HTTP requests for unlock sessions
type Handler struct {
	service *Service
}

// NewHandler creates a new access handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for session endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Unlock)
	r.Delete("/", h.Reset)

	return r
}

// Unlock handles POST /sessions
// @Summary      Unlock a posting's private view
// @Description  Verify the owner name and password for a posting and mint an unlock token
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body UnlockRequest true "Verification request"
// @Success      200 {object} response.APIResponse{data=SessionResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /sessions [post]
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	session, err := h.service.Authenticate(r.Context(), req.StartupID, req.Owner, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid owner name or password")
			return
		}
		response.InternalError(w, "Failed to verify owner")
		return
	}

	response.JSON(w, http.StatusOK, session.ToResponse())
}

// Reset handles DELETE /sessions
// @Summary      Reset an unlock session
// @Description  Discard the caller's unlock token, locking its posting again
// @Tags         sessions
// @Success      204
// @Router       /sessions [delete]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	// Resetting never fails, even with a missing or unknown token.
	if token := bearerToken(r); token != "" {
		h.service.Reset(token)
	}
	response.NoContent(w)
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
