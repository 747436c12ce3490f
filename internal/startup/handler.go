package startup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SagarNRao/agile-lab2-startup-market/pkg/middleware"
	"github.com/SagarNRao/agile-lab2-startup-market/pkg/response"
)

// Handler handles HTTP requests for startup postings
type Handler struct {
	service *Service
	guard   func(http.Handler) http.Handler
}

// NewHandler creates a new startup handler. The guard middleware protects
// the owner-only endpoints behind an unlock token.
func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

// Routes returns the router for startup endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/applications", h.Apply)

	// Owner-only view and decisions
	r.Group(func(r chi.Router) {
		r.Use(h.guard)
		r.Get("/{id}/team", h.GetTeam)
		r.Post("/{id}/applications/{applicationId}/accept", h.AcceptApplication)
		r.Post("/{id}/applications/{applicationId}/reject", h.RejectApplication)
	})

	return r
}

// Create handles POST /startups
// @Summary      Post a startup idea
// @Description  Create a new startup posting with open roles
// @Tags         startups
// @Accept       json
// @Produce      json
// @Param        request body CreateStartupRequest true "Startup posting request"
// @Success      201 {object} response.APIResponse{data=StartupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /startups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	startup, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create startup")
		return
	}

	response.JSON(w, http.StatusCreated, startup.ToResponse())
}

// List handles GET /startups
// @Summary      List startup postings
// @Description  Get a paginated feed of startup postings in creation order
// @Tags         startups
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]StartupResponse}
// @Router       /startups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	startups, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list startups")
		return
	}

	startupResponses := make([]*StartupResponse, len(startups))
	for i, s := range startups {
		startupResponses[i] = s.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, startupResponses, meta)
}

// GetByID handles GET /startups/{id}
// @Summary      Get a startup posting
// @Description  Get the public view of one posting
// @Tags         startups
// @Produce      json
// @Param        id path int true "Startup ID"
// @Success      200 {object} response.APIResponse{data=StartupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /startups/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid startup ID")
		return
	}

	startup, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get startup")
		return
	}

	response.JSON(w, http.StatusOK, startup.ToResponse())
}

// Apply handles POST /startups/{id}/applications
// @Summary      Apply for a role
// @Description  Record an application for a role on a posting
// @Tags         startups
// @Accept       json
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        request body ApplyRequest true "Application request"
// @Success      201 {object} response.APIResponse{data=ApplicationResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /startups/{id}/applications [post]
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid startup ID")
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	app, err := h.service.Apply(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrMissingApplicant) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrStartupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to apply")
		return
	}

	response.JSON(w, http.StatusCreated, app.ToResponse())
}

// GetTeam handles GET /startups/{id}/team
// @Summary      View a posting's team
// @Description  Get the applications and members of a posting. Requires an unlock token for this posting.
// @Tags         startups
// @Produce      json
// @Param        id path int true "Startup ID"
// @Success      200 {object} response.APIResponse{data=TeamResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /startups/{id}/team [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	startup, ok := h.unlockedStartup(w, r)
	if !ok {
		return
	}

	response.JSON(w, http.StatusOK, startup.ToTeamResponse())
}

// AcceptApplication handles POST /startups/{id}/applications/{applicationId}/accept
// @Summary      Accept an application
// @Description  Accept a pending application and add the applicant to the team
// @Tags         startups
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        applicationId path string true "Application ID"
// @Success      200 {object} response.APIResponse{data=ApplicationResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /startups/{id}/applications/{applicationId}/accept [post]
func (h *Handler) AcceptApplication(w http.ResponseWriter, r *http.Request) {
	h.decideApplication(w, r, h.service.AcceptApplication)
}

// RejectApplication handles POST /startups/{id}/applications/{applicationId}/reject
// @Summary      Reject an application
// @Description  Reject a pending application
// @Tags         startups
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        applicationId path string true "Application ID"
// @Success      200 {object} response.APIResponse{data=ApplicationResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /startups/{id}/applications/{applicationId}/reject [post]
func (h *Handler) RejectApplication(w http.ResponseWriter, r *http.Request) {
	h.decideApplication(w, r, h.service.RejectApplication)
}

func (h *Handler) decideApplication(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, startupID int64, applicationID string) (*Application, error)) {
	startup, ok := h.unlockedStartup(w, r)
	if !ok {
		return
	}

	app, err := decide(r.Context(), startup.ID, chi.URLParam(r, "applicationId"))
	if err != nil {
		if errors.Is(err, ErrApplicationNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrApplicationNotPending) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to decide application")
		return
	}

	response.JSON(w, http.StatusOK, app.ToResponse())
}

// unlockedStartup loads the posting from the path id and checks the unlock
// token on the request is scoped to that same posting. A token for a
// different posting does not carry over.
func (h *Handler) unlockedStartup(w http.ResponseWriter, r *http.Request) (*Startup, bool) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid startup ID")
		return nil, false
	}

	unlockedID, ok := middleware.GetUnlockedStartup(r.Context())
	if !ok || unlockedID != id {
		response.Forbidden(w, "Unlock token is not valid for this startup")
		return nil, false
	}

	startup, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			response.NotFound(w, err.Error())
			return nil, false
		}
		response.InternalError(w, "Failed to get startup")
		return nil, false
	}

	return startup, true
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
