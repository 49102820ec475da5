package services

import (
	"context"
	"fmt"

	"github.com/stayhive/backend/internal/domain/entities"
	"github.com/stayhive/backend/internal/domain/policy"
	"github.com/stayhive/backend/internal/domain/repositories"
	apperrors "github.com/stayhive/backend/pkg/errors"
)

// Facade is the single coordination point for every business operation. It
// owns one repository per entity type, written against the abstract contract
// only, and is where all cross-entity rules live: reference resolution,
// uniqueness, self-review and duplicate-review prevention, and the
// admin-or-owner authorization checks.
type Facade struct {
	users     repositories.UserRepository
	places    repositories.PlaceRepository
	reviews   repositories.ReviewRepository
	amenities repositories.AmenityRepository
}

// NewFacade creates the domain service over the given repositories.
func NewFacade(
	users repositories.UserRepository,
	places repositories.PlaceRepository,
	reviews repositories.ReviewRepository,
	amenities repositories.AmenityRepository,
) *Facade {
	return &Facade{
		users:     users,
		places:    places,
		reviews:   reviews,
		amenities: amenities,
	}
}

// --- users ---

// CreateUser constructs and stores a user. Email uniqueness is enforced here
// so the invariant holds for every caller of the facade, not only the HTTP
// boundary.
func (f *Facade) CreateUser(ctx context.Context, fields map[string]any) (*entities.User, error) {
	firstName, _, err := entities.StringField(fields, "first_name")
	if err != nil {
		return nil, err
	}
	lastName, _, err := entities.StringField(fields, "last_name")
	if err != nil {
		return nil, err
	}
	email, _, err := entities.StringField(fields, "email")
	if err != nil {
		return nil, err
	}
	password, _, err := entities.StringField(fields, "password")
	if err != nil {
		return nil, err
	}
	isAdmin, _, err := entities.BoolField(fields, "is_admin")
	if err != nil {
		return nil, err
	}

	user, err := entities.NewUser(firstName, lastName, email, password, isAdmin)
	if err != nil {
		return nil, err
	}

	existing, err := f.users.GetByAttribute(ctx, "email", user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email is already registered")
	}

	if err := f.users.Add(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (f *Facade) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := f.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return user, nil
}

// GetUserByEmail retrieves a user by normalized email address.
func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := f.users.GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

// GetAllUsers retrieves all users.
func (f *Facade) GetAllUsers(ctx context.Context) ([]*entities.User, error) {
	return f.users.GetAll(ctx)
}

// UpdateUser applies a partial field map to a user. A changed email is
// re-checked for uniqueness against every other user.
func (f *Facade) UpdateUser(ctx context.Context, id string, fields map[string]any) (*entities.User, error) {
	user, err := f.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if email, ok, err := entities.StringField(fields, "email"); err != nil {
		return nil, err
	} else if ok {
		candidate := &entities.User{}
		if err := candidate.SetEmail(email); err != nil {
			return nil, err
		}
		other, err := f.users.GetByAttribute(ctx, "email", candidate.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, apperrors.NewConflictError("email is already registered")
		}
	}

	if err := f.users.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return f.GetUser(ctx, id)
}

// --- places ---

// CreatePlace resolves the owner and stores a new place. The title is
// globally unique.
func (f *Facade) CreatePlace(ctx context.Context, fields map[string]any) (*entities.Place, error) {
	ownerID, _, err := entities.StringField(fields, "owner_id")
	if err != nil {
		return nil, err
	}
	owner, err := f.users.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("owner with id %s not found", ownerID))
	}

	title, _, err := entities.StringField(fields, "title")
	if err != nil {
		return nil, err
	}
	description, _, err := entities.StringField(fields, "description")
	if err != nil {
		return nil, err
	}
	price, _, err := entities.FloatField(fields, "price")
	if err != nil {
		return nil, err
	}
	latitude, _, err := entities.FloatField(fields, "latitude")
	if err != nil {
		return nil, err
	}
	longitude, _, err := entities.FloatField(fields, "longitude")
	if err != nil {
		return nil, err
	}

	place, err := entities.NewPlace(title, description, price, latitude, longitude, owner.ID)
	if err != nil {
		return nil, err
	}

	existing, err := f.places.GetByAttribute(ctx, "title", place.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("a place with this title already exists")
	}

	if err := f.places.Add(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// GetPlace retrieves a place by id.
func (f *Facade) GetPlace(ctx context.Context, id string) (*entities.Place, error) {
	place, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	return place, nil
}

// GetPlaceByTitle retrieves a place by exact title.
func (f *Facade) GetPlaceByTitle(ctx context.Context, title string) (*entities.Place, error) {
	place, err := f.places.GetByAttribute(ctx, "title", title)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, apperrors.NewNotFoundError("place not found")
	}
	return place, nil
}

// GetAllPlaces retrieves all places.
func (f *Facade) GetAllPlaces(ctx context.Context) ([]*entities.Place, error) {
	return f.places.GetAll(ctx)
}

// UpdatePlace applies a partial field map to a place. Only the owner or an
// admin may update; a supplied owner_id must resolve to an existing user and
// a changed title must stay unique.
func (f *Facade) UpdatePlace(ctx context.Context, actor policy.Actor, id string, fields map[string]any) (*entities.Place, error) {
	place, err := f.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.Allowed(actor, place.OwnerID) {
		return nil, apperrors.NewUnauthorizedError("unauthorized action")
	}

	if ownerID, ok, err := entities.StringField(fields, "owner_id"); err != nil {
		return nil, err
	} else if ok {
		owner, err := f.users.Get(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, apperrors.NewValidationError("owner_id", "does not resolve to an existing user")
		}
	}

	if title, ok, err := entities.StringField(fields, "title"); err != nil {
		return nil, err
	} else if ok {
		candidate := &entities.Place{}
		if err := candidate.SetTitle(title); err != nil {
			return nil, err
		}
		other, err := f.places.GetByAttribute(ctx, "title", candidate.Title)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != place.ID {
			return nil, apperrors.NewConflictError("a place with this title already exists")
		}
	}

	if err := f.places.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return f.GetPlace(ctx, id)
}

// DeletePlace removes a place. The repository's delete cascades to the
// place's reviews in one atomic step; shared amenities survive. Only the
// owner or an admin may delete.
func (f *Facade) DeletePlace(ctx context.Context, actor policy.Actor, id string) error {
	place, err := f.GetPlace(ctx, id)
	if err != nil {
		return err
	}
	if !policy.Allowed(actor, place.OwnerID) {
		return apperrors.NewUnauthorizedError("unauthorized action")
	}

	return f.places.Delete(ctx, id)
}

// --- reviews ---

// CreateReview resolves author and place, enforces the review rules, stores
// the review and appends it to the place's owned collection so a subsequent
// place lookup reflects it without a second query.
func (f *Facade) CreateReview(ctx context.Context, fields map[string]any) (*entities.Review, error) {
	userID, _, err := entities.StringField(fields, "user_id")
	if err != nil {
		return nil, err
	}
	placeID, _, err := entities.StringField(fields, "place_id")
	if err != nil {
		return nil, err
	}
	text, _, err := entities.StringField(fields, "text")
	if err != nil {
		return nil, err
	}
	rating, _, err := entities.IntField(fields, "rating")
	if err != nil {
		return nil, err
	}

	user, err := f.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	place, err := f.places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if user == nil || place == nil {
		return nil, &apperrors.AppError{
			Type:    apperrors.ErrorTypeValidation,
			Message: "invalid user_id or place_id",
		}
	}

	// Checked again here on purpose, ahead of entity construction.
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating", "must be an integer between 1 and 5")
	}

	if place.OwnerID == user.ID {
		return nil, apperrors.NewConflictError("you cannot review your own place")
	}

	existing, err := f.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	for _, review := range existing {
		if review.UserID == user.ID {
			return nil, apperrors.NewConflictError("you have already reviewed this place")
		}
	}

	review, err := entities.NewReview(text, rating, user.ID, place.ID)
	if err != nil {
		return nil, err
	}

	if err := f.reviews.Add(ctx, review); err != nil {
		return nil, err
	}
	if err := f.places.AppendReview(ctx, place.ID, review.ID); err != nil {
		// Keep the stores consistent: a review the place cannot reference
		// must not stay durably stored.
		_ = f.reviews.Delete(ctx, review.ID)
		return nil, err
	}
	return review, nil
}

// GetReview retrieves a review by id.
func (f *Facade) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	return review, nil
}

// GetAllReviews retrieves all reviews.
func (f *Facade) GetAllReviews(ctx context.Context) ([]*entities.Review, error) {
	return f.reviews.GetAll(ctx)
}

// GetReviewsByPlace returns every review referencing the place.
func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	return f.reviews.ListByPlace(ctx, placeID)
}

// UpdateReview applies a partial field map to a review. Only the author or
// an admin may update; a supplied rating is range-checked before the
// repository update.
func (f *Facade) UpdateReview(ctx context.Context, actor policy.Actor, id string, fields map[string]any) (*entities.Review, error) {
	review, err := f.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.Allowed(actor, review.UserID) {
		return nil, apperrors.NewUnauthorizedError("unauthorized action")
	}

	if rating, ok, err := entities.IntField(fields, "rating"); err != nil {
		return nil, err
	} else if ok {
		if rating < 1 || rating > 5 {
			return nil, apperrors.NewValidationError("rating", "must be an integer between 1 and 5")
		}
	}

	if err := f.reviews.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return f.GetReview(ctx, id)
}

// DeleteReview removes a review and detaches it from its place. Only the
// author or an admin may delete.
func (f *Facade) DeleteReview(ctx context.Context, actor policy.Actor, id string) error {
	review, err := f.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if !policy.Allowed(actor, review.UserID) {
		return apperrors.NewUnauthorizedError("unauthorized action")
	}

	if err := f.reviews.Delete(ctx, id); err != nil {
		return err
	}
	return f.places.RemoveReview(ctx, review.PlaceID, review.ID)
}

// --- amenities ---

// CreateAmenity stores a new amenity. Admin only; the name is globally
// unique.
func (f *Facade) CreateAmenity(ctx context.Context, actor policy.Actor, fields map[string]any) (*entities.Amenity, error) {
	if !policy.Allowed(actor, "") {
		return nil, apperrors.NewUnauthorizedError("admin privileges required")
	}

	name, _, err := entities.StringField(fields, "name")
	if err != nil {
		return nil, err
	}
	amenity, err := entities.NewAmenity(name)
	if err != nil {
		return nil, err
	}

	existing, err := f.amenities.GetByAttribute(ctx, "name", amenity.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("an amenity with this name already exists")
	}

	if err := f.amenities.Add(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

// GetAmenity retrieves an amenity by id.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*entities.Amenity, error) {
	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}
	return amenity, nil
}

// GetAmenityByName retrieves an amenity by exact name.
func (f *Facade) GetAmenityByName(ctx context.Context, name string) (*entities.Amenity, error) {
	amenity, err := f.amenities.GetByAttribute(ctx, "name", name)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, apperrors.NewNotFoundError("amenity not found")
	}
	return amenity, nil
}

// GetAllAmenities retrieves all amenities.
func (f *Facade) GetAllAmenities(ctx context.Context) ([]*entities.Amenity, error) {
	return f.amenities.GetAll(ctx)
}

// UpdateAmenity applies a partial field map to an amenity. Admin only; a
// changed name must stay unique.
func (f *Facade) UpdateAmenity(ctx context.Context, actor policy.Actor, id string, fields map[string]any) (*entities.Amenity, error) {
	if !policy.Allowed(actor, "") {
		return nil, apperrors.NewUnauthorizedError("admin privileges required")
	}
	amenity, err := f.GetAmenity(ctx, id)
	if err != nil {
		return nil, err
	}

	if name, ok, err := entities.StringField(fields, "name"); err != nil {
		return nil, err
	} else if ok {
		candidate := &entities.Amenity{}
		if err := candidate.SetName(name); err != nil {
			return nil, err
		}
		other, err := f.amenities.GetByAttribute(ctx, "name", candidate.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != amenity.ID {
			return nil, apperrors.NewConflictError("an amenity with this name already exists")
		}
	}

	if err := f.amenities.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return f.GetAmenity(ctx, id)
}

// AddAmenityToPlace links an existing amenity to an existing place. Only the
// place owner or an admin may link; linking the same amenity twice is a
// conflict, so the association always contains an amenity at most once.
func (f *Facade) AddAmenityToPlace(ctx context.Context, actor policy.Actor, placeID, amenityID string) (*entities.Place, error) {
	place, err := f.places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", placeID))
	}
	amenity, err := f.amenities.Get(ctx, amenityID)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", amenityID))
	}
	if !policy.Allowed(actor, place.OwnerID) {
		return nil, apperrors.NewUnauthorizedError("unauthorized action")
	}

	if err := f.places.AppendAmenity(ctx, place.ID, amenity.ID); err != nil {
		return nil, err
	}
	return f.GetPlace(ctx, placeID)
}
