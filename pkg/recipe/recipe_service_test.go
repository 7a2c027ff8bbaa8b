package recipe

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/attribute"

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
		&entities.RecipeLike{},
		&entities.Rating{},
		&entities.Comment{},
	))
	return db
}

func newTestService(t *testing.T) (RecipeService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), attribute.NewAttributeRepository(db), nil)
	return service, db
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

func createTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) entities.Recipe {
	t.Helper()

	recipe := entities.Recipe{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		TimeMinutes: 15,
		Price:       9.50,
	}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe
}

func TestCreateRecipeResolvesAttributes(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db)
	ctx := context.Background()

	req := domain.CreateRecipeRequest{
		Title:       "Pumpkin Soup",
		Description: "Autumn classic",
		TimeMinutes: 30,
		Price:       7.25,
		Tags:        []domain.RecipeAttribute{{Name: "Vegan"}, {Name: "Soup"}},
		Ingredients: []domain.RecipeAttribute{{Name: "Pumpkin"}},
	}
	res, err := service.CreateRecipe(ctx, req, user.ID.String())
	require.NoError(t, err)
	assert.Len(t, res.Tags, 2)
	assert.Len(t, res.Ingredients, 1)

	// Same names on a second recipe must reuse the existing rows.
	_, err = service.CreateRecipe(ctx, req, user.ID.String())
	require.NoError(t, err)

	var tagCount int64
	require.NoError(t, db.Model(&entities.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(2), tagCount)
}

func TestRateRecipeRecomputesAggregates(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	rater := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")
	ctx := context.Background()

	_, err := service.RateRecipe(ctx, recipe.ID.String(), domain.RateRecipeRequest{Score: 4}, owner.ID.String())
	require.NoError(t, err)
	_, err = service.RateRecipe(ctx, recipe.ID.String(), domain.RateRecipeRequest{Score: 5}, rater.ID.String())
	require.NoError(t, err)

	var stored entities.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, 2, stored.RatingsCount)
	assert.InDelta(t, 4.5, stored.AverageRating, 0.001)
}

func TestRateRecipeUpsertsExistingScore(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")
	ctx := context.Background()

	first, err := service.RateRecipe(ctx, recipe.ID.String(), domain.RateRecipeRequest{Score: 2}, owner.ID.String())
	require.NoError(t, err)
	second, err := service.RateRecipe(ctx, recipe.ID.String(), domain.RateRecipeRequest{Score: 5}, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Score)

	var ratingCount int64
	require.NoError(t, db.Model(&entities.Rating{}).Count(&ratingCount).Error)
	assert.Equal(t, int64(1), ratingCount)

	var stored entities.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, 1, stored.RatingsCount)
	assert.InDelta(t, 5.0, stored.AverageRating, 0.001)
}

func TestRateRecipeRoundsAverage(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")
	ctx := context.Background()

	for _, score := range []int{4, 5, 5} {
		rater := createTestUser(t, db)
		_, err := service.RateRecipe(ctx, recipe.ID.String(), domain.RateRecipeRequest{Score: score}, rater.ID.String())
		require.NoError(t, err)
	}

	var stored entities.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.InDelta(t, 4.67, stored.AverageRating, 0.001)
}

func TestRateRecipeRejectsOutOfRangeScore(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")
	ctx := context.Background()

	for _, score := range []int{0, 6} {
		_, err := service.RateRecipe(ctx, recipe.ID.String(), domain.RateRecipeRequest{Score: score}, owner.ID.String())
		assert.ErrorIs(t, err, domain.ErrInvalidScore)
	}
}

func TestGetRecipesFilterByTagsDeduplicates(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db)
	ctx := context.Background()

	res, err := service.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Curry",
		TimeMinutes: 40,
		Tags:        []domain.RecipeAttribute{{Name: "Spicy"}, {Name: "Dinner"}},
	}, user.ID.String())
	require.NoError(t, err)

	_, err = service.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Porridge",
		TimeMinutes: 10,
	}, user.ID.String())
	require.NoError(t, err)

	// Both tag IDs match the same recipe; it must come back once.
	filter := res.Tags[0].ID + "," + res.Tags[1].ID
	recipes, count, err := service.GetRecipes(ctx, user.ID.String(), filter, "", 1, domain.DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Curry", recipes[0].Title)
}

func TestGetRecipesRejectsMalformedFilter(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db)

	_, _, err := service.GetRecipes(context.Background(), user.ID.String(), "not-a-uuid", "", 1, domain.DefaultPageSize)
	assert.ErrorIs(t, err, domain.ErrInvalidFilterParam)
}

func TestGetRecipesScopedToOwnerNewestFirst(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	ctx := context.Background()

	older := entities.Recipe{ID: uuid.New(), UserID: user.ID, Title: "Older", TimeMinutes: 5}
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&older).Error)
	newer := entities.Recipe{ID: uuid.New(), UserID: user.ID, Title: "Newer", TimeMinutes: 5}
	newer.CreatedAt = time.Now()
	require.NoError(t, db.Create(&newer).Error)
	createTestRecipe(t, db, other.ID, "Not Mine")

	recipes, count, err := service.GetRecipes(ctx, user.ID.String(), "", "", 1, domain.DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Newer", recipes[0].Title)
	assert.Equal(t, "Older", recipes[1].Title)
}

func TestLikeRecipeIsIdempotent(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	fan := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")
	ctx := context.Background()

	require.NoError(t, service.LikeRecipe(ctx, recipe.ID.String(), fan.ID.String()))
	require.NoError(t, service.LikeRecipe(ctx, recipe.ID.String(), fan.ID.String()))

	var likeCount int64
	require.NoError(t, db.Model(&entities.RecipeLike{}).Count(&likeCount).Error)
	assert.Equal(t, int64(1), likeCount)

	detail, err := service.GetRecipeDetail(ctx, recipe.ID.String(), fan.ID.String())
	require.NoError(t, err)
	assert.True(t, detail.IsLiked)

	require.NoError(t, service.UnlikeRecipe(ctx, recipe.ID.String(), fan.ID.String()))
	// A second unlike is a no-op, not an error.
	require.NoError(t, service.UnlikeRecipe(ctx, recipe.ID.String(), fan.ID.String()))

	detail, err = service.GetRecipeDetail(ctx, recipe.ID.String(), fan.ID.String())
	require.NoError(t, err)
	assert.False(t, detail.IsLiked)
}

func TestUpdateRecipeRequiresOwnership(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	intruder := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")

	title := "Hijacked"
	_, err := service.UpdateRecipe(context.Background(), recipe.ID.String(), domain.UpdateRecipeRequest{Title: &title}, intruder.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)
}

func TestUpdateRecipeEmptyTagListClears(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db)
	ctx := context.Background()

	created, err := service.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Curry",
		TimeMinutes: 40,
		Tags:        []domain.RecipeAttribute{{Name: "Spicy"}},
	}, user.ID.String())
	require.NoError(t, err)
	require.Len(t, created.Tags, 1)

	empty := []domain.RecipeAttribute{}
	updated, err := service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Tags: &empty}, user.ID.String())
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)

	// An update that omits tags leaves them untouched.
	price := 3.50
	updated, err = service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Price: &price}, user.ID.String())
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
	assert.Equal(t, 3.50, updated.Price)
}

func TestDeleteRecipeRemovesInteractions(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	fan := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")
	ctx := context.Background()

	require.NoError(t, service.LikeRecipe(ctx, recipe.ID.String(), fan.ID.String()))
	_, err := service.RateRecipe(ctx, recipe.ID.String(), domain.RateRecipeRequest{Score: 4}, fan.ID.String())
	require.NoError(t, err)
	_, err = service.AddComment(ctx, recipe.ID.String(), domain.AddCommentRequest{Content: "Tasty"}, fan.ID.String())
	require.NoError(t, err)

	require.NoError(t, service.DeleteRecipe(ctx, recipe.ID.String(), owner.ID.String()))

	for _, model := range []interface{}{&entities.RecipeLike{}, &entities.Rating{}, &entities.Comment{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}

func TestDeleteCommentRequiresOwnership(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	commenter := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")
	ctx := context.Background()

	comment, err := service.AddComment(ctx, recipe.ID.String(), domain.AddCommentRequest{Content: "Tasty"}, commenter.ID.String())
	require.NoError(t, err)

	err = service.DeleteComment(ctx, comment.ID, owner.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedCommentAccess)

	require.NoError(t, service.DeleteComment(ctx, comment.ID, commenter.ID.String()))

	err = service.DeleteComment(ctx, comment.ID, commenter.ID.String())
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestGetRecipeDetailOpenToAnyUser(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db)
	visitor := createTestUser(t, db)
	recipe := createTestRecipe(t, db, owner.ID, "Ramen")

	detail, err := service.GetRecipeDetail(context.Background(), recipe.ID.String(), visitor.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ramen", detail.Title)
}
