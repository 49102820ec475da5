package handlers

import (
	"net/http"

	"github.com/stayhive/backend/internal/api/middleware"
	"github.com/stayhive/backend/internal/application/services"
)

// AmenityHandler handles amenity endpoints.
type AmenityHandler struct {
	facade *services.Facade
}

// NewAmenityHandler creates a new amenity handler.
func NewAmenityHandler(facade *services.Facade) *AmenityHandler {
	return &AmenityHandler{facade: facade}
}

// Create handles POST /api/v1/amenities
func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	amenity, err := h.facade.CreateAmenity(r.Context(), actor, fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, amenity)
}

// List handles GET /api/v1/amenities
func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.facade.GetAllAmenities(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, amenities)
}

// Get handles GET /api/v1/amenities/{id}
func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.facade.GetAmenity(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, amenity)
}

// Update handles PUT /api/v1/amenities/{id}
func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	amenity, err := h.facade.UpdateAmenity(r.Context(), actor, r.PathValue("id"), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, amenity)
}
