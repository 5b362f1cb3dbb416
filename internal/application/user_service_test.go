package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

func TestUpsertUser_Idempotent(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users(), zap.NewNop())
	ident := userDomain.Identity{ExternalID: "user_1", Email: "Ann@Example.com", DisplayName: "Ann"}

	first, err := svc.UpsertUser(context.Background(), ident)
	require.NoError(t, err)
	second, err := svc.UpsertUser(context.Background(), ident)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ann@example.com", second.Email)
	assert.Equal(t, 1, store.Users().UserCount())
}

func TestUpsertUser_UpdatesProfile(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.UpsertUser(ctx, userDomain.Identity{ExternalID: "user_1", Email: "a@example.com"})
	require.NoError(t, err)
	updated, err := svc.UpsertUser(ctx, userDomain.Identity{
		ExternalID: "user_1", Email: "b@example.com", DisplayName: "Bea", IsAdmin: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "b@example.com", updated.Email)
	assert.Equal(t, "Bea", updated.Name)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, 1, store.Users().UserCount())
}

func TestUpsertUser_Validation(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users(), zap.NewNop())

	u, err := svc.UpsertUser(context.Background(), userDomain.Identity{ExternalID: "user_1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, userDomain.UnknownName, u.Name)

	_, err = svc.UpsertUser(context.Background(), userDomain.Identity{Email: "a@example.com"})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.UpsertUser(context.Background(), userDomain.Identity{ExternalID: "user_2"})
	assert.True(t, domain.IsValidation(err))
}

func TestUpsertUser_EmailTakenByAnotherAccount(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.UpsertUser(ctx, userDomain.Identity{ExternalID: "user_1", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.UpsertUser(ctx, userDomain.Identity{ExternalID: "user_2", Email: "a@example.com"})
	assert.True(t, domain.IsConflict(err))
}
