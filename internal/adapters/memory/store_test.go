package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhive/backend/internal/adapters/memory"
	"github.com/stayhive/backend/internal/domain/entities"
	apperrors "github.com/stayhive/backend/pkg/errors"
)

func TestStore_AddGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	user, err := entities.NewUser("Jane", "Doe", "jane@example.com", "secret", false)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, user))

	got, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	// Unknown ids yield nil without an error.
	missing, err := repo.Get(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(ctx, user.ID))
	gone, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Deleting again is a no-op.
	require.NoError(t, repo.Delete(ctx, user.ID))
}

func TestStore_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	for i := 0; i < 3; i++ {
		user, err := entities.NewUser("Jane", "Doe", fmt.Sprintf("jane%d@example.com", i), "secret", false)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, user))
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_UpdateAppliesValidatedSetters(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	user, err := entities.NewUser("Jane", "Doe", "jane@example.com", "secret", false)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, user))

	require.NoError(t, repo.Update(ctx, user.ID, map[string]any{"first_name": "Janet"}))
	got, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.FirstName)

	// Validation failures propagate and nothing changes.
	err = repo.Update(ctx, user.ID, map[string]any{"email": "broken"})
	require.Error(t, err)
	got, err = repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)

	// Updating an unknown id is a no-op.
	require.NoError(t, repo.Update(ctx, "no-such-id", map[string]any{"first_name": "X"}))
}

func TestStore_GetByAttribute(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	user, err := entities.NewUser("Jane", "Doe", "jane@example.com", "secret", false)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, user))

	got, err := repo.GetByAttribute(ctx, "email", "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	missing, err := repo.GetByAttribute(ctx, "email", "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	unknown, err := repo.GetByAttribute(ctx, "shoe_size", 42)
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestStore_ReadsAreIsolatedFromWrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	user, err := entities.NewUser("Jane", "Doe", "jane@example.com", "secret", false)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, user))

	// Mutating the caller's object after Add does not reach the store.
	user.FirstName = "Tampered"
	got, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)

	// An entity held from a read is a snapshot; later updates do not show
	// through it, and mutating it does not reach the store.
	require.NoError(t, repo.Update(ctx, user.ID, map[string]any{"first_name": "Maria"}))
	assert.Equal(t, "Jane", got.FirstName)

	got.FirstName = "Tampered"
	fresh, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", fresh.FirstName)
}

func TestStore_HeldEntityReadableDuringUpdates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	user, err := entities.NewUser("Jane", "Doe", "jane@example.com", "secret", false)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, user))

	got, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			assert.NoError(t, repo.Update(ctx, user.ID, map[string]any{"first_name": "Maria"}))
		}
	}()
	for i := 0; i < 200; i++ {
		assert.Equal(t, "Jane", got.FirstName)
	}
	<-done
}

func TestPlaceStore_AppendReviewConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPlaceRepository(memory.NewReviewRepository())

	place, err := entities.NewPlace("Flat", "", 100, 0, 0, "owner-1")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, place))

	const appends = 50
	var wg sync.WaitGroup
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, repo.AppendReview(ctx, place.ID, fmt.Sprintf("rev-%d", n)))
		}(i)
	}
	wg.Wait()

	got, err := repo.Get(ctx, place.ID)
	require.NoError(t, err)
	assert.Len(t, got.ReviewIDs, appends)
}

func TestPlaceStore_DeleteCascadesReviews(t *testing.T) {
	ctx := context.Background()
	reviews := memory.NewReviewRepository()
	repo := memory.NewPlaceRepository(reviews)

	place, err := entities.NewPlace("Flat", "", 100, 0, 0, "owner-1")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, place))

	review, err := entities.NewReview("nice", 5, "user-1", place.ID)
	require.NoError(t, err)
	require.NoError(t, reviews.Add(ctx, review))

	other, err := entities.NewReview("meh", 2, "user-1", "other-place")
	require.NoError(t, err)
	require.NoError(t, reviews.Add(ctx, other))

	require.NoError(t, repo.Delete(ctx, place.ID))

	gone, err := repo.Get(ctx, place.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	remaining, err := reviews.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)
}

func TestPlaceStore_AppendAmenity(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPlaceRepository(memory.NewReviewRepository())

	place, err := entities.NewPlace("Flat", "", 100, 0, 0, "owner-1")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, place))

	require.NoError(t, repo.AppendAmenity(ctx, place.ID, "am-1"))

	err = repo.AppendAmenity(ctx, place.ID, "am-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	got, err := repo.Get(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"am-1"}, got.AmenityIDs)

	err = repo.AppendAmenity(ctx, "no-such-place", "am-1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestReviewStore_ListAndDeleteByPlace(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReviewRepository()

	for i := 0; i < 3; i++ {
		review, err := entities.NewReview("nice", 5, fmt.Sprintf("user-%d", i), "place-1")
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, review))
	}
	other, err := entities.NewReview("meh", 2, "user-9", "place-2")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, other))

	matches, err := repo.ListByPlace(ctx, "place-1")
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	require.NoError(t, repo.DeleteByPlace(ctx, "place-1"))

	matches, err = repo.ListByPlace(ctx, "place-1")
	require.NoError(t, err)
	assert.Empty(t, matches)

	remaining, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestReviewStore_ListByPlaceOrdersOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReviewRepository()

	base := time.Now().UTC()
	var want []string
	for i := 2; i >= 0; i-- {
		review, err := entities.NewReview("nice", 5, fmt.Sprintf("user-%d", i), "place-1")
		require.NoError(t, err)
		review.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Add(ctx, review))
		want = append([]string{review.ID}, want...)
	}

	matches, err := repo.ListByPlace(ctx, "place-1")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	for i, review := range matches {
		assert.Equal(t, want[i], review.ID)
	}
}
