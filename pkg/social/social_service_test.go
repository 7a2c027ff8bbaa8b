package social

import (
	"context"
	"path/filepath"
	"testing"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Follow{}))
	return db
}

func newTestService(t *testing.T) (SocialService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	service := NewSocialService(NewFollowRepository(db), user.NewUserRepository(db))
	return service, db
}

func createTestUser(t *testing.T, db *gorm.DB) entities.User {
	t.Helper()

	u := entities.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Name:     "Test User",
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestFollowIsIdempotent(t *testing.T) {
	service, db := newTestService(t)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	ctx := context.Background()

	require.NoError(t, service.Follow(ctx, alice.ID.String(), bob.ID.String()))
	require.NoError(t, service.Follow(ctx, alice.ID.String(), bob.ID.String()))

	var count int64
	require.NoError(t, db.Model(&entities.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowRejectsSelf(t *testing.T) {
	service, db := newTestService(t)
	alice := createTestUser(t, db)

	err := service.Follow(context.Background(), alice.ID.String(), alice.ID.String())
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
}

func TestFollowUnknownUser(t *testing.T) {
	service, db := newTestService(t)
	alice := createTestUser(t, db)

	err := service.Follow(context.Background(), alice.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUnfollowMissingEdgeSucceeds(t *testing.T) {
	service, db := newTestService(t)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	require.NoError(t, service.Unfollow(context.Background(), alice.ID.String(), bob.ID.String()))
}

func TestGetFollowsListsOwnEdges(t *testing.T) {
	service, db := newTestService(t)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	carol := createTestUser(t, db)
	ctx := context.Background()

	require.NoError(t, service.Follow(ctx, alice.ID.String(), bob.ID.String()))
	require.NoError(t, service.Follow(ctx, alice.ID.String(), carol.ID.String()))
	require.NoError(t, service.Follow(ctx, bob.ID.String(), alice.ID.String()))

	follows, count, err := service.GetFollows(ctx, alice.ID.String(), 1, domain.DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, follows, 2)
	for _, follow := range follows {
		assert.Equal(t, alice.ID.String(), follow.FollowerID)
	}
}

func TestUnfollowRemovesEdge(t *testing.T) {
	service, db := newTestService(t)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	ctx := context.Background()

	require.NoError(t, service.Follow(ctx, alice.ID.String(), bob.ID.String()))
	require.NoError(t, service.Unfollow(ctx, alice.ID.String(), bob.ID.String()))

	var count int64
	require.NoError(t, db.Model(&entities.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
