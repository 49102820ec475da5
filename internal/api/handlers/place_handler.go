package handlers

import (
	"net/http"

	"github.com/stayhive/backend/internal/api/middleware"
	"github.com/stayhive/backend/internal/application/services"
)

// PlaceHandler handles place endpoints.
type PlaceHandler struct {
	facade *services.Facade
}

// NewPlaceHandler creates a new place handler.
func NewPlaceHandler(facade *services.Facade) *PlaceHandler {
	return &PlaceHandler{facade: facade}
}

// Create handles POST /api/v1/places. The authenticated caller becomes the
// owner.
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	if !actor.IsAdmin {
		fields["owner_id"] = actor.ID
	}

	place, err := h.facade.CreatePlace(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, place)
}

// List handles GET /api/v1/places
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.facade.GetAllPlaces(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, places)
}

// Get handles GET /api/v1/places/{id}
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	place, err := h.facade.GetPlace(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}

// Update handles PUT /api/v1/places/{id}
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	place, err := h.facade.UpdatePlace(r.Context(), actor, r.PathValue("id"), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}

// Delete handles DELETE /api/v1/places/{id}
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.facade.DeletePlace(r.Context(), actor, r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "place deleted"})
}

// ListReviews handles GET /api/v1/places/{id}/reviews
func (h *PlaceHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("id")
	if _, err := h.facade.GetPlace(r.Context(), placeID); err != nil {
		respondWithAppError(w, err)
		return
	}
	reviews, err := h.facade.GetReviewsByPlace(r.Context(), placeID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// AddAmenity handles POST /api/v1/places/{id}/amenities/{amenity_id}
func (h *PlaceHandler) AddAmenity(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	place, err := h.facade.AddAmenityToPlace(r.Context(), actor, r.PathValue("id"), r.PathValue("amenity_id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}
