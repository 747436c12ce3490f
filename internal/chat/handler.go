package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SagarNRao/agile-lab2-startup-market/internal/startup"
	"github.com/SagarNRao/agile-lab2-startup-market/pkg/response"
)

// StartupGetter looks up a posting to seed a room from
type StartupGetter interface {
	GetByID(ctx context.Context, id int64) (*startup.Startup, error)
}

// Handler handles HTTP requests for chat rooms
type Handler struct {
	service  *Service
	startups StartupGetter
}

// NewHandler creates a new chat handler
func NewHandler(service *Service, startups StartupGetter) *Handler {
	return &Handler{service: service, startups: startups}
}

// Routes returns the router for chat endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/join", h.Join)
	r.Post("/{id}/messages", h.Send)

	return r
}

// Create handles POST /chats
// @Summary      Open a chat room
// @Description  Open a room, optionally seeding the roster from a startup posting's team
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        request body CreateRoomRequest true "Room creation request"
// @Success      201 {object} response.APIResponse{data=RoomResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /chats [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	var seed *Seed
	if req.StartupID != nil {
		target, err := h.startups.GetByID(r.Context(), *req.StartupID)
		if err != nil {
			if errors.Is(err, startup.ErrStartupNotFound) {
				response.NotFound(w, err.Error())
				return
			}
			response.InternalError(w, "Failed to load startup")
			return
		}

		seed = &Seed{StartupID: target.ID, Name: target.Name}
		for _, m := range target.Members {
			seed.Members = append(seed.Members, SeedMember{Name: m.Name, Role: m.Role})
		}
	}

	room, err := h.service.Create(r.Context(), seed)
	if err != nil {
		response.InternalError(w, "Failed to create room")
		return
	}

	response.JSON(w, http.StatusCreated, room.ToResponse())
}

// GetByID handles GET /chats/{id}
// @Summary      Get a chat room
// @Description  Get a room's roster and message log
// @Tags         chats
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} response.APIResponse{data=RoomResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /chats/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get room")
		return
	}

	response.JSON(w, http.StatusOK, room.ToResponse())
}

// Join handles POST /chats/{id}/join
// @Summary      Join a chat room
// @Description  Add yourself to the roster and unlock the composer
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body JoinRequest true "Join request"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /chats/{id}/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.service.Join(r.Context(), chi.URLParam(r, "id"), req.Name, req.Role)
	if err != nil {
		if errors.Is(err, ErrMissingIdentity) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrRoomNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to join room")
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}

// Send handles POST /chats/{id}/messages
// @Summary      Send a message
// @Description  Post a message to a room. The sender must have joined first.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body SendMessageRequest true "Message request"
// @Success      201 {object} response.APIResponse{data=MessageResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /chats/{id}/messages [post]
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	message, err := h.service.Send(r.Context(), chi.URLParam(r, "id"), req.Sender, req.Content)
	if err != nil {
		if errors.Is(err, ErrMissingContent) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotJoined) {
			response.Forbidden(w, err.Error())
			return
		}
		if errors.Is(err, ErrRoomNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to send message")
		return
	}

	response.JSON(w, http.StatusCreated, message.ToResponse())
}
