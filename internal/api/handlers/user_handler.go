package handlers

import (
	"net/http"

	"github.com/stayhive/backend/internal/api/middleware"
	"github.com/stayhive/backend/internal/application/services"
	"github.com/stayhive/backend/internal/domain/policy"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	facade *services.Facade
}

// NewUserHandler creates a new user handler.
func NewUserHandler(facade *services.Facade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	// The admin flag is never accepted from an unauthenticated payload.
	actor := middleware.ActorFromContext(r.Context())
	if !actor.IsAdmin {
		delete(fields, "is_admin")
	}

	user, err := h.facade.CreateUser(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.facade.GetAllUsers(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.facade.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/v1/users/{id}. Callers may modify themselves;
// admins may modify anyone.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	actor := middleware.ActorFromContext(r.Context())
	if !policy.Allowed(actor, id) {
		respondWithError(w, http.StatusForbidden, "unauthorized action")
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !actor.IsAdmin {
		delete(fields, "is_admin")
	}

	user, err := h.facade.UpdateUser(r.Context(), id, fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
