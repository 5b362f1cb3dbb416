package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

func savePet(t *testing.T, s *Store, petType string) *petDomain.Pet {
	t.Helper()
	p, err := petDomain.NewPet("owner", petDomain.NewPetInput{
		Name: "x", Type: petType, Age: "1", ImageURL: "https://img/x.jpg",
	}, true)
	require.NoError(t, err)
	require.NoError(t, s.Pets().Save(context.Background(), p))
	return p
}

func TestLikeRepo_EnforcesConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := savePet(t, s, "cat")

	l, err := likeDomain.NewLike("user_1", p.ID())
	require.NoError(t, err)
	require.NoError(t, s.Likes().Save(ctx, l))

	dup, _ := likeDomain.NewLike("user_1", p.ID())
	assert.True(t, domain.IsConflict(s.Likes().Save(ctx, dup)))

	orphan, _ := likeDomain.NewLike("user_1", 999)
	assert.True(t, domain.IsNotFound(s.Likes().Save(ctx, orphan)))

	assert.Equal(t, 1, s.Likes().Count("user_1", p.ID()))
}

func TestPetRepo_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 12; i++ {
		savePet(t, s, "dog")
	}
	savePet(t, s, "cat")

	pets, total, err := s.Pets().List(ctx, petDomain.ListQuery{TypeFilter: "do", Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, pets, 2)

	pets, _, err = s.Pets().List(ctx, petDomain.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(13), pets[0].ID(), "newest first")

	pets, total, err = s.Pets().List(ctx, petDomain.ListQuery{Page: 922337203685477582, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, pets)
	assert.Equal(t, int64(13), total)
}
