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

// ReviewAdapter implements review persistence in Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func reviewRecord(review *entities.Review) goqu.Record {
	return goqu.Record{
		"id":         review.ID,
		"text":       review.Text,
		"rating":     review.Rating,
		"user_id":    review.UserID,
		"place_id":   review.PlaceID,
		"created_at": review.CreatedAt,
		"updated_at": review.UpdatedAt,
	}
}

const reviewColumns = "id, text, rating, user_id, place_id, created_at, updated_at"

func scanReview(scanner interface{ Scan(...any) error }) (*entities.Review, error) {
	review := &entities.Review{}
	err := scanner.Scan(
		&review.ID,
		&review.Text,
		&review.Rating,
		&review.UserID,
		&review.PlaceID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Add inserts a review row.
func (a *ReviewAdapter) Add(ctx context.Context, review *entities.Review) error {
	query, args, err := a.db.Insert("reviews").Rows(reviewRecord(review)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// Get returns the review for id, or nil when absent.
func (a *ReviewAdapter) Get(ctx context.Context, id string) (*entities.Review, error) {
	row := a.client.DB().QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id = $1", id)
	review, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

func (a *ReviewAdapter) queryReviews(ctx context.Context, query string, args ...any) ([]*entities.Review, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}
	return reviews, nil
}

// GetAll returns every review.
func (a *ReviewAdapter) GetAll(ctx context.Context) ([]*entities.Review, error) {
	return a.queryReviews(ctx, "SELECT "+reviewColumns+" FROM reviews")
}

// ListByPlace returns the reviews for a place, oldest first.
func (a *ReviewAdapter) ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	return a.queryReviews(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE place_id = $1 ORDER BY created_at, id", placeID)
}

// Update loads the review, applies the field map through the entity's
// validated setters and writes the row back. Unknown id is a no-op.
func (a *ReviewAdapter) Update(ctx context.Context, id string, fields map[string]any) error {
	review, err := a.Get(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return nil
	}
	if err := review.Apply(fields); err != nil {
		return err
	}

	query, args, err := a.db.Update("reviews").
		Set(reviewRecord(review)).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review update query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}
	return nil
}

// Delete removes the review row. Unknown id is a no-op.
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}
	return nil
}

// DeleteByPlace removes every review referencing the place.
func (a *ReviewAdapter) DeleteByPlace(ctx context.Context, placeID string) error {
	query, args, err := a.db.Delete("reviews").Where(goqu.Ex{"place_id": placeID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review cascade query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete place reviews", err)
	}
	return nil
}

// GetByAttribute returns the first review whose column equals value, or nil.
func (a *ReviewAdapter) GetByAttribute(ctx context.Context, name string, value any) (*entities.Review, error) {
	column, ok := map[string]string{
		"user_id":  "user_id",
		"place_id": "place_id",
	}[name]
	if !ok {
		return nil, nil
	}
	query, args, err := a.db.From("reviews").
		Select(goqu.L(reviewColumns)).
		Where(goqu.Ex{column: value}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review lookup query", err)
	}
	review, err := scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up review", err)
	}
	return review, nil
}
