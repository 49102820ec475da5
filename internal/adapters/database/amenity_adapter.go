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

// AmenityAdapter implements amenity persistence in Postgres.
type AmenityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAmenityAdapter creates a new amenity adapter.
func NewAmenityAdapter(client *postgres.Client) repositories.AmenityRepository {
	return &AmenityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func amenityRecord(amenity *entities.Amenity) goqu.Record {
	return goqu.Record{
		"id":         amenity.ID,
		"name":       amenity.Name,
		"created_at": amenity.CreatedAt,
		"updated_at": amenity.UpdatedAt,
	}
}

const amenityColumns = "id, name, created_at, updated_at"

func scanAmenity(scanner interface{ Scan(...any) error }) (*entities.Amenity, error) {
	amenity := &entities.Amenity{}
	err := scanner.Scan(
		&amenity.ID,
		&amenity.Name,
		&amenity.CreatedAt,
		&amenity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return amenity, nil
}

// Add inserts an amenity row. The unique index on name backs up the facade's
// uniqueness check.
func (a *AmenityAdapter) Add(ctx context.Context, amenity *entities.Amenity) error {
	query, args, err := a.db.Insert("amenities").Rows(amenityRecord(amenity)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("an amenity with this name already exists")
		}
		return apperrors.NewInternalError("failed to create amenity", err)
	}
	return nil
}

// Get returns the amenity for id, or nil when absent.
func (a *AmenityAdapter) Get(ctx context.Context, id string) (*entities.Amenity, error) {
	row := a.client.DB().QueryRowContext(ctx,
		"SELECT "+amenityColumns+" FROM amenities WHERE id = $1", id)
	amenity, err := scanAmenity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get amenity", err)
	}
	return amenity, nil
}

// GetAll returns every amenity.
func (a *AmenityAdapter) GetAll(ctx context.Context) ([]*entities.Amenity, error) {
	rows, err := a.client.DB().QueryContext(ctx,
		"SELECT "+amenityColumns+" FROM amenities")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list amenities", err)
	}
	defer rows.Close()

	amenities := []*entities.Amenity{}
	for rows.Next() {
		amenity, err := scanAmenity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity", err)
		}
		amenities = append(amenities, amenity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating amenities", err)
	}
	return amenities, nil
}

// Update loads the amenity, applies the field map through the entity's
// validated setters and writes the row back. Unknown id is a no-op.
func (a *AmenityAdapter) Update(ctx context.Context, id string, fields map[string]any) error {
	amenity, err := a.Get(ctx, id)
	if err != nil {
		return err
	}
	if amenity == nil {
		return nil
	}
	if err := amenity.Apply(fields); err != nil {
		return err
	}

	query, args, err := a.db.Update("amenities").
		Set(amenityRecord(amenity)).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity update query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("an amenity with this name already exists")
		}
		return apperrors.NewInternalError("failed to update amenity", err)
	}
	return nil
}

// Delete removes the amenity row and its place links. Unknown id is a no-op.
func (a *AmenityAdapter) Delete(ctx context.Context, id string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin amenity delete", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM place_amenities WHERE amenity_id = $1", id); err != nil {
		return apperrors.NewInternalError("failed to delete amenity links", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM amenities WHERE id = $1", id); err != nil {
		return apperrors.NewInternalError("failed to delete amenity", err)
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit amenity delete", err)
	}
	return nil
}

// GetByAttribute returns the first amenity whose column equals value, or nil.
func (a *AmenityAdapter) GetByAttribute(ctx context.Context, name string, value any) (*entities.Amenity, error) {
	if name != "name" {
		return nil, nil
	}
	query, args, err := a.db.From("amenities").
		Select(goqu.L(amenityColumns)).
		Where(goqu.Ex{"name": value}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity lookup query", err)
	}
	amenity, err := scanAmenity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up amenity", err)
	}
	return amenity, nil
}
