package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/events"
)

func createPet(t *testing.T, f *petFixture, name string) int64 {
	t.Helper()
	dto, err := f.pets.CreatePet(context.Background(), listingInput(name, "cat"), "owner_1", false)
	require.NoError(t, err)
	return dto.ID
}

func TestToggleLike_Alternates(t *testing.T) {
	f := newPetFixture()
	petID := createPet(t, f, "Milo")
	ctx := context.Background()

	res, err := f.likes.ToggleLike(ctx, "user_1", petID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, f.store.Likes().Count("user_1", petID))

	res, err = f.likes.ToggleLike(ctx, "user_1", petID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, f.store.Likes().Count("user_1", petID))

	assert.Equal(t, []string{events.PetCreated, events.PetLiked, events.PetUnliked}, f.publisher.types())
}

func TestToggleLike_DuplicateInsertIsConflict(t *testing.T) {
	f := newPetFixture()
	petID := createPet(t, f, "Milo")
	ctx := context.Background()

	_, err := f.likes.ToggleLike(ctx, "user_1", petID)
	require.NoError(t, err)

	dup, err := likeDomain.NewLike("user_1", petID)
	require.NoError(t, err)
	assert.True(t, domain.IsConflict(f.store.Likes().Save(ctx, dup)))
}

func TestToggleLike_ConcurrentTogglesKeepOneRow(t *testing.T) {
	f := newPetFixture()
	petID := createPet(t, f, "Milo")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.likes.ToggleLike(context.Background(), "user_1", petID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, f.store.Likes().Count("user_1", petID), 1)
}

func TestToggleLike_Errors(t *testing.T) {
	f := newPetFixture()

	_, err := f.likes.ToggleLike(context.Background(), "", 1)
	assert.True(t, domain.IsUnauthorized(err))

	_, err = f.likes.ToggleLike(context.Background(), "user_1", 404)
	assert.True(t, domain.IsNotFound(err))
}

func TestRemoveLike(t *testing.T) {
	f := newPetFixture()
	petID := createPet(t, f, "Milo")
	ctx := context.Background()

	_, err := f.likes.ToggleLike(ctx, "user_1", petID)
	require.NoError(t, err)
	mine, err := f.likes.ListMyLikes(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	likeID := mine[0].ID

	err = f.likes.RemoveLike(ctx, likeID, "user_2")
	assert.True(t, domain.IsNotFound(err), "other users cannot see the like")
	assert.Equal(t, 1, f.store.Likes().Count("user_1", petID))

	assert.True(t, domain.IsUnauthorized(f.likes.RemoveLike(ctx, likeID, "")))

	require.NoError(t, f.likes.RemoveLike(ctx, likeID, "user_1"))
	assert.Equal(t, 0, f.store.Likes().Count("user_1", petID))

	assert.True(t, domain.IsNotFound(f.likes.RemoveLike(ctx, likeID, "user_1")))
}

func TestListMyLikes(t *testing.T) {
	f := newPetFixture()
	ctx := context.Background()
	first := createPet(t, f, "Milo")
	second := createPet(t, f, "Luna")

	_, err := f.likes.ToggleLike(ctx, "user_1", first)
	require.NoError(t, err)
	_, err = f.likes.ToggleLike(ctx, "user_1", second)
	require.NoError(t, err)
	_, err = f.likes.ToggleLike(ctx, "user_2", first)
	require.NoError(t, err)

	likes, err := f.likes.ListMyLikes(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, second, likes[0].PetID, "newest first")
	require.NotNil(t, likes[0].Pet)
	assert.Equal(t, "Luna", likes[0].Pet.Name)

	_, err = f.likes.ListMyLikes(ctx, "")
	assert.True(t, domain.IsUnauthorized(err))
}
