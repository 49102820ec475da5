package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/stayhive/backend/internal/domain/entities"
	"github.com/stayhive/backend/internal/domain/repositories"
	"github.com/stayhive/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/stayhive/backend/pkg/errors"
)

// uniqueViolation is the Postgres error code for a unique index violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// UserAdapter implements user persistence in Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func userRecord(user *entities.User) goqu.Record {
	return goqu.Record{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"password":   user.Password,
		"is_admin":   user.IsAdmin,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

func scanUser(scanner interface{ Scan(...any) error }) (*entities.User, error) {
	user := &entities.User{}
	err := scanner.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

const userColumns = "id, first_name, last_name, email, password, is_admin, created_at, updated_at"

// Add inserts a user row. The unique index on email backs up the facade's
// uniqueness check.
func (a *UserAdapter) Add(ctx context.Context, user *entities.User) error {
	query, args, err := a.db.Insert("users").Rows(userRecord(user)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("email is already registered")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

// Get returns the user for id, or nil when absent.
func (a *UserAdapter) Get(ctx context.Context, id string) (*entities.User, error) {
	row := a.client.DB().QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// GetAll returns every user.
func (a *UserAdapter) GetAll(ctx context.Context) ([]*entities.User, error) {
	rows, err := a.client.DB().QueryContext(ctx,
		"SELECT "+userColumns+" FROM users")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating users", err)
	}
	return users, nil
}

// Update loads the user, applies the field map through the entity's
// validated setters and writes the row back. Unknown id is a no-op.
func (a *UserAdapter) Update(ctx context.Context, id string, fields map[string]any) error {
	user, err := a.Get(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if err := user.Apply(fields); err != nil {
		return err
	}

	query, args, err := a.db.Update("users").
		Set(userRecord(user)).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user update query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("email is already registered")
		}
		return apperrors.NewInternalError("failed to update user", err)
	}
	return nil
}

// Delete removes the user row. Unknown id is a no-op.
func (a *UserAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("users").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}
	return nil
}

var userLookupColumns = map[string]string{
	"email":      "email",
	"first_name": "first_name",
	"last_name":  "last_name",
}

// GetByAttribute returns the first user whose column equals value, or nil.
func (a *UserAdapter) GetByAttribute(ctx context.Context, name string, value any) (*entities.User, error) {
	column, ok := userLookupColumns[name]
	if !ok {
		return nil, nil
	}
	query, args, err := a.db.From("users").
		Select(goqu.L(userColumns)).
		Where(goqu.Ex{column: value}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user lookup query", err)
	}
	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	return user, nil
}
