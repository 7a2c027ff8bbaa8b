package user

import (
	"context"
	"path/filepath"
	"testing"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/jwt"

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

func newTestService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	service := NewUserService(NewUserRepository(db), jwt.NewJWTService())
	return service, db
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, domain.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", registered.Email)

	res, err := service.Login(ctx, domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	req := domain.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "supersecret"}
	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown accounts report the same error as a wrong password.
	_, err = service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateUserKeepsUnsetFields(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, domain.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	updated, err := service.UpdateUser(ctx, domain.UpdateUserRequest{Name: "Alice B."}, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)

	// Password untouched, login still works.
	_, err = service.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
}

func TestGetProfileCountsFollows(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	alice := entities.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice", IsActive: true}
	bob := entities.User{ID: uuid.New(), Email: "bob@example.com", Name: "Bob", IsActive: true}
	carol := entities.User{ID: uuid.New(), Email: "carol@example.com", Name: "Carol", IsActive: true}
	for _, u := range []*entities.User{&alice, &bob, &carol} {
		require.NoError(t, db.Create(u).Error)
	}

	require.NoError(t, db.Create(&entities.Follow{ID: uuid.New(), FollowerID: bob.ID, FolloweeID: alice.ID}).Error)
	require.NoError(t, db.Create(&entities.Follow{ID: uuid.New(), FollowerID: carol.ID, FolloweeID: alice.ID}).Error)
	require.NoError(t, db.Create(&entities.Follow{ID: uuid.New(), FollowerID: alice.ID, FolloweeID: bob.ID}).Error)

	profile, err := service.GetProfile(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.FollowersCount)
	assert.Equal(t, int64(1), profile.FollowingCount)
}

func TestGetProfileUnknownUser(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetProfile(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
