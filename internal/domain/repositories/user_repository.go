package repositories

import (
	"github.com/stayhive/backend/internal/domain/entities"
)

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Repository[*entities.User]
}

// AmenityRepository defines the interface for amenity storage.
type AmenityRepository interface {
	Repository[*entities.Amenity]
}
