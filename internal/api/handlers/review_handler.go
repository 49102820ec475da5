package handlers

import (
	"net/http"

	"github.com/stayhive/backend/internal/api/middleware"
	"github.com/stayhive/backend/internal/application/services"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	facade *services.Facade
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(facade *services.Facade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Create handles POST /api/v1/reviews. The author is always the
// authenticated caller.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor.Anonymous() {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	fields["user_id"] = actor.ID

	review, err := h.facade.CreateReview(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

// List handles GET /api/v1/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.GetAllReviews(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// Get handles GET /api/v1/reviews/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	review, err := h.facade.GetReview(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// Update handles PUT /api/v1/reviews/{id}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	review, err := h.facade.UpdateReview(r.Context(), actor, r.PathValue("id"), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.facade.DeleteReview(r.Context(), actor, r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
