package routes

import (
	"net/http"

	"github.com/stayhive/backend/internal/api/handlers"
	"github.com/stayhive/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	userHandler    *handlers.UserHandler
	placeHandler   *handlers.PlaceHandler
	reviewHandler  *handlers.ReviewHandler
	amenityHandler *handlers.AmenityHandler
}

// NewRouter creates a new router
func NewRouter(
	userHandler *handlers.UserHandler,
	placeHandler *handlers.PlaceHandler,
	reviewHandler *handlers.ReviewHandler,
	amenityHandler *handlers.AmenityHandler,
) *Router {
	r := &Router{
		mux:            http.NewServeMux(),
		userHandler:    userHandler,
		placeHandler:   placeHandler,
		reviewHandler:  reviewHandler,
		amenityHandler: amenityHandler,
	}
	r.registerRoutes()
	return r
}

func (r *Router) registerRoutes() {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.mux.HandleFunc("POST /api/v1/users", r.userHandler.Create)
	r.mux.HandleFunc("GET /api/v1/users", r.userHandler.List)
	r.mux.HandleFunc("GET /api/v1/users/{id}", r.userHandler.Get)
	r.mux.HandleFunc("PUT /api/v1/users/{id}", r.userHandler.Update)

	r.mux.HandleFunc("POST /api/v1/places", r.placeHandler.Create)
	r.mux.HandleFunc("GET /api/v1/places", r.placeHandler.List)
	r.mux.HandleFunc("GET /api/v1/places/{id}", r.placeHandler.Get)
	r.mux.HandleFunc("PUT /api/v1/places/{id}", r.placeHandler.Update)
	r.mux.HandleFunc("DELETE /api/v1/places/{id}", r.placeHandler.Delete)
	r.mux.HandleFunc("GET /api/v1/places/{id}/reviews", r.placeHandler.ListReviews)
	r.mux.HandleFunc("POST /api/v1/places/{id}/amenities/{amenity_id}", r.placeHandler.AddAmenity)

	r.mux.HandleFunc("POST /api/v1/reviews", r.reviewHandler.Create)
	r.mux.HandleFunc("GET /api/v1/reviews", r.reviewHandler.List)
	r.mux.HandleFunc("GET /api/v1/reviews/{id}", r.reviewHandler.Get)
	r.mux.HandleFunc("PUT /api/v1/reviews/{id}", r.reviewHandler.Update)
	r.mux.HandleFunc("DELETE /api/v1/reviews/{id}", r.reviewHandler.Delete)

	r.mux.HandleFunc("POST /api/v1/amenities", r.amenityHandler.Create)
	r.mux.HandleFunc("GET /api/v1/amenities", r.amenityHandler.List)
	r.mux.HandleFunc("GET /api/v1/amenities/{id}", r.amenityHandler.Get)
	r.mux.HandleFunc("PUT /api/v1/amenities/{id}", r.amenityHandler.Update)
}

// Handler returns the router wrapped in the middleware chain.
func (r *Router) Handler() http.Handler {
	var handler http.Handler = r.mux
	handler = middleware.IdentityMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	return handler
}
