package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/stayhive/backend/internal/domain/entities"
	"github.com/stayhive/backend/internal/domain/repositories"
	"github.com/stayhive/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/stayhive/backend/pkg/errors"
)

// PlaceAdapter implements place persistence in Postgres. The amenity
// association lives in the place_amenities join table; review membership is
// derived from reviews.place_id, so both id collections are hydrated on read.
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter.
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func placeRecord(place *entities.Place) goqu.Record {
	return goqu.Record{
		"id":          place.ID,
		"title":       place.Title,
		"description": place.Description,
		"price":       place.Price,
		"latitude":    place.Latitude,
		"longitude":   place.Longitude,
		"owner_id":    place.OwnerID,
		"created_at":  place.CreatedAt,
		"updated_at":  place.UpdatedAt,
	}
}

const placeColumns = "id, title, description, price, latitude, longitude, owner_id, created_at, updated_at"

// Add inserts a place row.
func (a *PlaceAdapter) Add(ctx context.Context, place *entities.Place) error {
	query, args, err := a.db.Insert("places").Rows(placeRecord(place)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a place with this title already exists")
		}
		return apperrors.NewInternalError("failed to create place", err)
	}
	return nil
}

func (a *PlaceAdapter) hydrate(ctx context.Context, place *entities.Place) error {
	amenityRows, err := a.client.DB().QueryContext(ctx,
		"SELECT amenity_id FROM place_amenities WHERE place_id = $1", place.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to load place amenities", err)
	}
	defer amenityRows.Close()
	for amenityRows.Next() {
		var id string
		if err := amenityRows.Scan(&id); err != nil {
			return apperrors.NewInternalError("failed to scan amenity link", err)
		}
		place.AmenityIDs = append(place.AmenityIDs, id)
	}
	if err := amenityRows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating amenity links", err)
	}

	reviewRows, err := a.client.DB().QueryContext(ctx,
		"SELECT id FROM reviews WHERE place_id = $1 ORDER BY created_at, id", place.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to load place reviews", err)
	}
	defer reviewRows.Close()
	for reviewRows.Next() {
		var id string
		if err := reviewRows.Scan(&id); err != nil {
			return apperrors.NewInternalError("failed to scan review id", err)
		}
		place.ReviewIDs = append(place.ReviewIDs, id)
	}
	if err := reviewRows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating review ids", err)
	}
	return nil
}

func scanPlace(scanner interface{ Scan(...any) error }) (*entities.Place, error) {
	place := &entities.Place{}
	err := scanner.Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Price,
		&place.Latitude,
		&place.Longitude,
		&place.OwnerID,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return place, nil
}

// Get returns the place for id with its amenity and review id collections,
// or nil when absent.
func (a *PlaceAdapter) Get(ctx context.Context, id string) (*entities.Place, error) {
	row := a.client.DB().QueryRowContext(ctx,
		"SELECT "+placeColumns+" FROM places WHERE id = $1", id)
	place, err := scanPlace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get place", err)
	}
	if err := a.hydrate(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// GetAll returns every place with hydrated collections.
func (a *PlaceAdapter) GetAll(ctx context.Context) ([]*entities.Place, error) {
	rows, err := a.client.DB().QueryContext(ctx,
		"SELECT "+placeColumns+" FROM places")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	defer rows.Close()

	places := []*entities.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating places", err)
	}

	for _, place := range places {
		if err := a.hydrate(ctx, place); err != nil {
			return nil, err
		}
	}
	return places, nil
}

// Update loads the place, applies the field map through the entity's
// validated setters and writes the row back. Unknown id is a no-op.
func (a *PlaceAdapter) Update(ctx context.Context, id string, fields map[string]any) error {
	place, err := a.Get(ctx, id)
	if err != nil {
		return err
	}
	if place == nil {
		return nil
	}
	if err := place.Apply(fields); err != nil {
		return err
	}

	query, args, err := a.db.Update("places").
		Set(placeRecord(place)).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place update query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a place with this title already exists")
		}
		return apperrors.NewInternalError("failed to update place", err)
	}
	return nil
}

// Delete removes the place row together with its reviews and amenity links
// in one transaction, so a failure mid-cascade leaves everything in place.
func (a *PlaceAdapter) Delete(ctx context.Context, id string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin place delete", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM reviews WHERE place_id = $1", id); err != nil {
		return apperrors.NewInternalError("failed to delete place reviews", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM place_amenities WHERE place_id = $1", id); err != nil {
		return apperrors.NewInternalError("failed to delete amenity links", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM places WHERE id = $1", id); err != nil {
		return apperrors.NewInternalError("failed to delete place", err)
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit place delete", err)
	}
	return nil
}

// GetByAttribute returns the first place whose column equals value, or nil.
func (a *PlaceAdapter) GetByAttribute(ctx context.Context, name string, value any) (*entities.Place, error) {
	column, ok := map[string]string{
		"title":    "title",
		"owner_id": "owner_id",
	}[name]
	if !ok {
		return nil, nil
	}
	query, args, err := a.db.From("places").
		Select(goqu.L(placeColumns)).
		Where(goqu.Ex{column: value}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build place lookup query", err)
	}
	place, err := scanPlace(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up place", err)
	}
	if err := a.hydrate(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// AppendReview verifies the place exists; membership itself is derived from
// the review row's place_id, so there is nothing else to write.
func (a *PlaceAdapter) AppendReview(ctx context.Context, placeID, reviewID string) error {
	var exists bool
	err := a.client.DB().QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM places WHERE id = $1)", placeID).Scan(&exists)
	if err != nil {
		return apperrors.NewInternalError("failed to check place", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("place with id " + placeID + " not found")
	}
	return nil
}

// RemoveReview is a no-op here for the same reason: deleting the review row
// already detaches it.
func (a *PlaceAdapter) RemoveReview(ctx context.Context, placeID, reviewID string) error {
	return nil
}

// AppendAmenity inserts a join row; the composite primary key turns a
// duplicate link into a conflict.
func (a *PlaceAdapter) AppendAmenity(ctx context.Context, placeID, amenityID string) error {
	query, args, err := a.db.Insert("place_amenities").
		Rows(goqu.Record{"place_id": placeID, "amenity_id": amenityID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity link query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("amenity is already linked to this place")
		}
		return apperrors.NewInternalError("failed to link amenity", err)
	}
	return nil
}
