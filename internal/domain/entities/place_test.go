package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhive/backend/internal/domain/entities"
	apperrors "github.com/stayhive/backend/pkg/errors"
)

func newTestPlace(t *testing.T) *entities.Place {
	t.Helper()
	place, err := entities.NewPlace("Seaside Flat", "two bedrooms", 120, 43.3, 5.4, "owner-1")
	require.NoError(t, err)
	return place
}

func TestNewPlace_Valid(t *testing.T) {
	place, err := entities.NewPlace("  Seaside Flat ", "  near the beach ", 120, -90, 180, "owner-1")
	require.NoError(t, err)

	assert.Equal(t, "Seaside Flat", place.Title)
	assert.Equal(t, "near the beach", place.Description)
	assert.Equal(t, "owner-1", place.OwnerID)
	assert.Empty(t, place.AmenityIDs)
	assert.Empty(t, place.ReviewIDs)
}

func TestNewPlace_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		price     float64
		latitude  float64
		longitude float64
		ownerID   string
		field     string
	}{
		{"blank title", " ", 100, 0, 0, "owner-1", "title"},
		{"title too long", strings.Repeat("x", 101), 100, 0, 0, "owner-1", "title"},
		{"zero price", "Flat", 0, 0, 0, "owner-1", "price"},
		{"negative price", "Flat", -5, 0, 0, "owner-1", "price"},
		{"latitude below range", "Flat", 100, -90.01, 0, "owner-1", "latitude"},
		{"latitude above range", "Flat", 100, 90.01, 0, "owner-1", "latitude"},
		{"longitude below range", "Flat", 100, 0, -180.5, "owner-1", "longitude"},
		{"longitude above range", "Flat", 100, 0, 181, "owner-1", "longitude"},
		{"missing owner", "Flat", 100, 0, 0, "", "owner_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entities.NewPlace(tt.title, "", tt.price, tt.latitude, tt.longitude, tt.ownerID)
			require.Error(t, err)

			appErr, ok := err.(*apperrors.AppError)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestPlace_ApplyReValidatesBounds(t *testing.T) {
	place := newTestPlace(t)

	require.Error(t, place.Apply(map[string]any{"latitude": 91.0}))
	require.Error(t, place.Apply(map[string]any{"longitude": -181.0}))
	require.Error(t, place.Apply(map[string]any{"price": -1.0}))

	// Nothing was applied.
	assert.Equal(t, 120.0, place.Price)
	assert.Equal(t, 43.3, place.Latitude)
	assert.Equal(t, 5.4, place.Longitude)
}

func TestPlace_ApplyRejectsNonNumericPrice(t *testing.T) {
	place := newTestPlace(t)

	err := place.Apply(map[string]any{"price": "cheap"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, 120.0, place.Price)
}

func TestPlace_AmenityLinks(t *testing.T) {
	place := newTestPlace(t)

	assert.False(t, place.HasAmenity("am-1"))
	place.AddAmenity("am-1")
	assert.True(t, place.HasAmenity("am-1"))
	assert.Equal(t, []string{"am-1"}, place.AmenityIDs)
}

func TestPlace_ReviewCollection(t *testing.T) {
	place := newTestPlace(t)

	place.AddReview("rev-1")
	place.AddReview("rev-2")
	assert.Equal(t, []string{"rev-1", "rev-2"}, place.ReviewIDs)

	place.RemoveReview("rev-1")
	assert.Equal(t, []string{"rev-2"}, place.ReviewIDs)

	place.RemoveReview("rev-unknown")
	assert.Equal(t, []string{"rev-2"}, place.ReviewIDs)
}
