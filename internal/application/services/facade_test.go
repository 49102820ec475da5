package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhive/backend/internal/adapters/memory"
	"github.com/stayhive/backend/internal/application/services"
	"github.com/stayhive/backend/internal/domain/entities"
	"github.com/stayhive/backend/internal/domain/policy"
	apperrors "github.com/stayhive/backend/pkg/errors"
)

func newTestFacade() *services.Facade {
	reviews := memory.NewReviewRepository()
	return services.NewFacade(
		memory.NewUserRepository(),
		memory.NewPlaceRepository(reviews),
		reviews,
		memory.NewAmenityRepository(),
	)
}

func createUser(t *testing.T, facade *services.Facade, email string) *entities.User {
	t.Helper()
	user, err := facade.CreateUser(context.Background(), map[string]any{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "secret",
	})
	require.NoError(t, err)
	return user
}

func createPlace(t *testing.T, facade *services.Facade, title, ownerID string) *entities.Place {
	t.Helper()
	place, err := facade.CreatePlace(context.Background(), map[string]any{
		"title":     title,
		"price":     100.0,
		"latitude":  10.0,
		"longitude": 20.0,
		"owner_id":  ownerID,
	})
	require.NoError(t, err)
	return place
}

func TestCreateUser_EnforcesEmailUniqueness(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	createUser(t, facade, "jane@example.com")

	// Normalization means a differently-cased duplicate still collides.
	_, err := facade.CreateUser(ctx, map[string]any{
		"first_name": "Other",
		"last_name":  "User",
		"email":      "  JANE@example.com ",
		"password":   "secret",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestUpdateUser_EmailUniquenessAgainstOthers(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	jane := createUser(t, facade, "jane@example.com")
	createUser(t, facade, "bob@example.com")

	// Keeping your own email is fine.
	_, err := facade.UpdateUser(ctx, jane.ID, map[string]any{"email": "jane@example.com"})
	require.NoError(t, err)

	// Taking someone else's is a conflict.
	_, err = facade.UpdateUser(ctx, jane.ID, map[string]any{"email": "bob@example.com"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestGetUserByEmail(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	jane := createUser(t, facade, "jane@example.com")

	got, err := facade.GetUserByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, got.ID)

	_, err = facade.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCreatePlace_UnknownOwner(t *testing.T) {
	facade := newTestFacade()

	_, err := facade.CreatePlace(context.Background(), map[string]any{
		"title":     "Ghost House",
		"price":     50.0,
		"latitude":  0.0,
		"longitude": 0.0,
		"owner_id":  "no-such-user",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCreatePlace_TitleUniqueness(t *testing.T) {
	facade := newTestFacade()

	owner := createUser(t, facade, "owner@example.com")
	createPlace(t, facade, "Seaside Flat", owner.ID)

	_, err := facade.CreatePlace(context.Background(), map[string]any{
		"title":     "  Seaside Flat ",
		"price":     80.0,
		"latitude":  1.0,
		"longitude": 1.0,
		"owner_id":  owner.ID,
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestCreatePlace_BoundsRejectedWithoutStoring(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()
	owner := createUser(t, facade, "owner@example.com")

	for _, fields := range []map[string]any{
		{"title": "Bad Lat", "price": 10.0, "latitude": 90.5, "longitude": 0.0, "owner_id": owner.ID},
		{"title": "Bad Lon", "price": 10.0, "latitude": 0.0, "longitude": -180.5, "owner_id": owner.ID},
		{"title": "Bad Price", "price": 0.0, "latitude": 0.0, "longitude": 0.0, "owner_id": owner.ID},
		{"title": "NaN Price", "price": "expensive", "latitude": 0.0, "longitude": 0.0, "owner_id": owner.ID},
	} {
		_, err := facade.CreatePlace(ctx, fields)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	}

	places, err := facade.GetAllPlaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestUpdatePlace_Authorization(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	stranger := createUser(t, facade, "stranger@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	_, err := facade.UpdatePlace(ctx, policy.Actor{ID: stranger.ID}, place.ID, map[string]any{"price": 200.0})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	updated, err := facade.UpdatePlace(ctx, policy.Actor{ID: owner.ID}, place.ID, map[string]any{"price": 200.0})
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.Price)

	// Admins may update anyone's place.
	updated, err = facade.UpdatePlace(ctx, policy.Actor{ID: stranger.ID, IsAdmin: true}, place.ID, map[string]any{"price": 250.0})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.Price)
}

func TestUpdatePlace_OwnerMustResolve(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	_, err := facade.UpdatePlace(ctx, policy.Actor{ID: owner.ID}, place.ID, map[string]any{"owner_id": "no-such-user"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestCreateReview_SelfReviewRejected(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	_, err := facade.CreateReview(ctx, map[string]any{
		"text":     "nice",
		"rating":   5,
		"user_id":  owner.ID,
		"place_id": place.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	reviews, err := facade.GetReviewsByPlace(ctx, place.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCreateReview_Succeeds(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	guest := createUser(t, facade, "guest@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	review, err := facade.CreateReview(ctx, map[string]any{
		"text":     "ok",
		"rating":   4,
		"user_id":  guest.ID,
		"place_id": place.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 4, review.Rating)

	reviews, err := facade.GetReviewsByPlace(ctx, place.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, review.ID, reviews[0].ID)

	// The place reflects the review without a second query path.
	got, err := facade.GetPlace(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{review.ID}, got.ReviewIDs)
}

func TestCreateReview_OnePerUserPerPlace(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	guest := createUser(t, facade, "guest@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	_, err := facade.CreateReview(ctx, map[string]any{
		"text": "ok", "rating": 4, "user_id": guest.ID, "place_id": place.ID,
	})
	require.NoError(t, err)

	_, err = facade.CreateReview(ctx, map[string]any{
		"text": "changed my mind", "rating": 1, "user_id": guest.ID, "place_id": place.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestCreateReview_InvalidReferences(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	guest := createUser(t, facade, "guest@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	for _, fields := range []map[string]any{
		{"text": "ok", "rating": 4, "user_id": "ghost", "place_id": place.ID},
		{"text": "ok", "rating": 4, "user_id": guest.ID, "place_id": "ghost"},
	} {
		_, err := facade.CreateReview(ctx, fields)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	}
}

func TestCreateReview_RatingValidation(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	guest := createUser(t, facade, "guest@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	for _, rating := range []any{0, 6, -3, 4.5, "five"} {
		_, err := facade.CreateReview(ctx, map[string]any{
			"text": "ok", "rating": rating, "user_id": guest.ID, "place_id": place.ID,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	}

	reviews, err := facade.GetAllReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestUpdateReview_RatingAndAuthorization(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	guest := createUser(t, facade, "guest@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	review, err := facade.CreateReview(ctx, map[string]any{
		"text": "ok", "rating": 4, "user_id": guest.ID, "place_id": place.ID,
	})
	require.NoError(t, err)

	_, err = facade.UpdateReview(ctx, policy.Actor{ID: owner.ID}, review.ID, map[string]any{"rating": 1})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, err = facade.UpdateReview(ctx, policy.Actor{ID: guest.ID}, review.ID, map[string]any{"rating": 9})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	updated, err := facade.UpdateReview(ctx, policy.Actor{ID: guest.ID}, review.ID, map[string]any{"rating": 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}

func TestDeleteReview(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	guest := createUser(t, facade, "guest@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	review, err := facade.CreateReview(ctx, map[string]any{
		"text": "ok", "rating": 4, "user_id": guest.ID, "place_id": place.ID,
	})
	require.NoError(t, err)

	err = facade.DeleteReview(ctx, policy.Actor{ID: guest.ID}, review.ID)
	require.NoError(t, err)

	_, err = facade.GetReview(ctx, review.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	// The place no longer references it.
	got, err := facade.GetPlace(ctx, place.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ReviewIDs)

	err = facade.DeleteReview(ctx, policy.Actor{ID: guest.ID}, review.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestDeletePlace_CascadesReviews(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	guest := createUser(t, facade, "guest@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	_, err := facade.CreateReview(ctx, map[string]any{
		"text": "ok", "rating": 4, "user_id": guest.ID, "place_id": place.ID,
	})
	require.NoError(t, err)

	require.NoError(t, facade.DeletePlace(ctx, policy.Actor{ID: owner.ID}, place.ID))

	_, err = facade.GetPlace(ctx, place.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	reviews, err := facade.GetReviewsByPlace(ctx, place.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	all, err := facade.GetAllReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateAmenity_AdminOnlyAndUnique(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	_, err := facade.CreateAmenity(ctx, policy.Actor{ID: "u1"}, map[string]any{"name": "WiFi"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	amenity, err := facade.CreateAmenity(ctx, policy.System, map[string]any{"name": "  WiFi "})
	require.NoError(t, err)
	assert.Equal(t, "WiFi", amenity.Name)

	_, err = facade.CreateAmenity(ctx, policy.System, map[string]any{"name": "WiFi"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestAddAmenityToPlace(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)
	amenity, err := facade.CreateAmenity(ctx, policy.System, map[string]any{"name": "WiFi"})
	require.NoError(t, err)

	_, err = facade.AddAmenityToPlace(ctx, policy.Actor{ID: "stranger"}, place.ID, amenity.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	updated, err := facade.AddAmenityToPlace(ctx, policy.Actor{ID: owner.ID}, place.ID, amenity.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{amenity.ID}, updated.AmenityIDs)

	// A second link of the same amenity is a conflict and the association
	// still contains the amenity exactly once.
	_, err = facade.AddAmenityToPlace(ctx, policy.Actor{ID: owner.ID}, place.ID, amenity.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	got, err := facade.GetPlace(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{amenity.ID}, got.AmenityIDs)
}

func TestAddAmenityToPlace_NamesMissingSide(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)
	amenity, err := facade.CreateAmenity(ctx, policy.System, map[string]any{"name": "WiFi"})
	require.NoError(t, err)

	_, err = facade.AddAmenityToPlace(ctx, policy.System, "ghost", amenity.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "place")

	_, err = facade.AddAmenityToPlace(ctx, policy.System, place.ID, "ghost")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "amenity")
}

func TestGetPlaceByTitleAndAmenityByName(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	owner := createUser(t, facade, "owner@example.com")
	place := createPlace(t, facade, "Seaside Flat", owner.ID)

	got, err := facade.GetPlaceByTitle(ctx, "Seaside Flat")
	require.NoError(t, err)
	assert.Equal(t, place.ID, got.ID)

	amenity, err := facade.CreateAmenity(ctx, policy.System, map[string]any{"name": "WiFi"})
	require.NoError(t, err)

	gotAmenity, err := facade.GetAmenityByName(ctx, "WiFi")
	require.NoError(t, err)
	assert.Equal(t, amenity.ID, gotAmenity.ID)
}

func TestUpdateAmenity(t *testing.T) {
	facade := newTestFacade()
	ctx := context.Background()

	wifi, err := facade.CreateAmenity(ctx, policy.System, map[string]any{"name": "WiFi"})
	require.NoError(t, err)
	_, err = facade.CreateAmenity(ctx, policy.System, map[string]any{"name": "Parking"})
	require.NoError(t, err)

	_, err = facade.UpdateAmenity(ctx, policy.Actor{ID: "u1"}, wifi.ID, map[string]any{"name": "Fast WiFi"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, err = facade.UpdateAmenity(ctx, policy.System, wifi.ID, map[string]any{"name": "Parking"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	updated, err := facade.UpdateAmenity(ctx, policy.System, wifi.ID, map[string]any{"name": "Fast WiFi"})
	require.NoError(t, err)
	assert.Equal(t, "Fast WiFi", updated.Name)
}
