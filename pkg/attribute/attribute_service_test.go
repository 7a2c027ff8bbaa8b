package attribute

import (
	"context"
	"path/filepath"
	"testing"

	"recipehub/domain"
	"recipehub/entities"

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
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) entities.User {
	t.Helper()

	user := entities.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Name:     "Test User",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestGetOrCreateTagReusesRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttributeRepository(db)
	user := createTestUser(t, db)
	ctx := context.Background()

	first, err := repo.GetOrCreateTag(ctx, user.ID, "Vegan")
	require.NoError(t, err)
	second, err := repo.GetOrCreateTag(ctx, user.ID, "Vegan")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&entities.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Another owner gets a separate row for the same name.
	other := createTestUser(t, db)
	third, err := repo.GetOrCreateTag(ctx, other.ID, "Vegan")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestGetOrCreateIngredientReusesRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttributeRepository(db)
	user := createTestUser(t, db)
	ctx := context.Background()

	first, err := repo.GetOrCreateIngredient(ctx, user.ID, "Salt")
	require.NoError(t, err)
	second, err := repo.GetOrCreateIngredient(ctx, user.ID, "Salt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetTagsAssignedOnly(t *testing.T) {
	db := newTestDB(t)
	service := NewAttributeService(NewAttributeRepository(db))
	user := createTestUser(t, db)
	ctx := context.Background()

	assigned := entities.Tag{ID: uuid.New(), UserID: user.ID, Name: "Dinner"}
	idle := entities.Tag{ID: uuid.New(), UserID: user.ID, Name: "Breakfast"}
	require.NoError(t, db.Create(&assigned).Error)
	require.NoError(t, db.Create(&idle).Error)

	recipe := entities.Recipe{ID: uuid.New(), UserID: user.ID, Title: "Stew", TimeMinutes: 60}
	require.NoError(t, db.Create(&recipe).Error)
	require.NoError(t, db.Model(&recipe).Association("Tags").Append(&assigned))

	tags, count, err := service.GetTags(ctx, user.ID.String(), "1", 1, domain.DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, tags, 1)
	assert.Equal(t, "Dinner", tags[0].Name)

	tags, count, err = service.GetTags(ctx, user.ID.String(), "0", 1, domain.DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, tags, 2)
}

func TestGetTagsAssignedOnlyDeduplicates(t *testing.T) {
	db := newTestDB(t)
	service := NewAttributeService(NewAttributeRepository(db))
	user := createTestUser(t, db)
	ctx := context.Background()

	tag := entities.Tag{ID: uuid.New(), UserID: user.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&tag).Error)

	// The same tag on two recipes must still come back once.
	for _, title := range []string{"Stew", "Pie"} {
		recipe := entities.Recipe{ID: uuid.New(), UserID: user.ID, Title: title, TimeMinutes: 30}
		require.NoError(t, db.Create(&recipe).Error)
		require.NoError(t, db.Model(&recipe).Association("Tags").Append(&tag))
	}

	tags, count, err := service.GetTags(ctx, user.ID.String(), "1", 1, domain.DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, tags, 1)
}

func TestGetTagsRejectsBadAssignedParam(t *testing.T) {
	db := newTestDB(t)
	service := NewAttributeService(NewAttributeRepository(db))
	user := createTestUser(t, db)

	_, _, err := service.GetTags(context.Background(), user.ID.String(), "yes", 1, domain.DefaultPageSize)
	assert.ErrorIs(t, err, domain.ErrInvalidAssignedParam)

	_, _, err = service.GetIngredients(context.Background(), user.ID.String(), "2", 1, domain.DefaultPageSize)
	assert.ErrorIs(t, err, domain.ErrInvalidAssignedParam)
}

func TestGetTagsOrderedByNameDescending(t *testing.T) {
	db := newTestDB(t)
	service := NewAttributeService(NewAttributeRepository(db))
	user := createTestUser(t, db)

	for _, name := range []string{"Apple", "Cherry", "Banana"} {
		require.NoError(t, db.Create(&entities.Tag{ID: uuid.New(), UserID: user.ID, Name: name}).Error)
	}

	tags, _, err := service.GetTags(context.Background(), user.ID.String(), "", 1, domain.DefaultPageSize)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "Cherry", tags[0].Name)
	assert.Equal(t, "Banana", tags[1].Name)
	assert.Equal(t, "Apple", tags[2].Name)
}

func TestUpdateTagScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	service := NewAttributeService(NewAttributeRepository(db))
	owner := createTestUser(t, db)
	intruder := createTestUser(t, db)

	tag := entities.Tag{ID: uuid.New(), UserID: owner.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&tag).Error)

	// Someone else's row looks like it does not exist.
	_, err := service.UpdateTag(context.Background(), tag.ID.String(), domain.UpdateAttributeRequest{Name: "Hijacked"}, intruder.ID.String())
	assert.ErrorIs(t, err, domain.ErrAttributeNotFound)

	res, err := service.UpdateTag(context.Background(), tag.ID.String(), domain.UpdateAttributeRequest{Name: "Supper"}, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Supper", res.Name)
}

func TestDeleteIngredientScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	service := NewAttributeService(NewAttributeRepository(db))
	owner := createTestUser(t, db)
	intruder := createTestUser(t, db)

	ingredient := entities.Ingredient{ID: uuid.New(), UserID: owner.ID, Name: "Salt"}
	require.NoError(t, db.Create(&ingredient).Error)

	err := service.DeleteIngredient(context.Background(), ingredient.ID.String(), intruder.ID.String())
	assert.ErrorIs(t, err, domain.ErrAttributeNotFound)

	require.NoError(t, service.DeleteIngredient(context.Background(), ingredient.ID.String(), owner.ID.String()))

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteTagClearsAssignments(t *testing.T) {
	db := newTestDB(t)
	service := NewAttributeService(NewAttributeRepository(db))
	user := createTestUser(t, db)

	tag := entities.Tag{ID: uuid.New(), UserID: user.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&tag).Error)
	recipe := entities.Recipe{ID: uuid.New(), UserID: user.ID, Title: "Stew", TimeMinutes: 60}
	require.NoError(t, db.Create(&recipe).Error)
	require.NoError(t, db.Model(&recipe).Association("Tags").Append(&tag))

	require.NoError(t, service.DeleteTag(context.Background(), tag.ID.String(), user.ID.String()))

	var assignments int64
	require.NoError(t, db.Table("recipe_tags").Count(&assignments).Error)
	assert.Equal(t, int64(0), assignments)
}
