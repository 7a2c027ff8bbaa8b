package recipe

import (
	"context"
	"math"
	"time"

	"recipehub/domain"
	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, userID string, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		ReplaceTags(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag) error
		ReplaceIngredients(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient) error

		LikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
		UnlikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
		IsRecipeLiked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		LikedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)

		RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, score int) (*entities.Rating, error)
		GetRatingsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]*entities.Rating, error)

		CreateComment(ctx context.Context, comment *entities.Comment) error
		GetCommentByID(ctx context.Context, id string) (*entities.Comment, error)
		DeleteComment(ctx context.Context, id string) error
		GetCommentsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]*entities.Comment, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// listQuery builds the owner-scoped predicate chain shared by the count
// and page queries. Filtering by tags or ingredients joins the membership
// tables, so results must be deduplicated.
func (r *recipeRepository) listQuery(ctx context.Context, userID string, filter domain.RecipeFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	return query
}

func (r *recipeRepository) GetRecipes(ctx context.Context, userID string, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.listQuery(ctx, userID, filter).
		Distinct("recipes.id").
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.listQuery(ctx, userID, filter).
		Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeID, err := uuid.Parse(id)
		if err != nil {
			return domain.ErrParseUUID
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeLike{}).Error; err != nil {
			return err
		}
		recipe := entities.Recipe{ID: recipeID}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(tags)
}

func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(ingredients)
}

func (r *recipeRepository) LikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	like := entities.RecipeLike{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}

	// Concurrent duplicate likes hit the unique pair index; DO NOTHING
	// keeps the operation idempotent.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoNothing: true,
	}).Create(&like).Error
}

func (r *recipeRepository) UnlikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeLike{}).Error
}

func (r *recipeRepository) IsRecipeLiked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeLike{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) LikedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		result[id] = false
	}

	if len(recipeIDs) == 0 {
		return result, nil
	}

	var likes []entities.RecipeLike
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Find(&likes).Error; err != nil {
		return nil, err
	}

	for _, like := range likes {
		result[like.RecipeID] = true
	}
	return result, nil
}

// RateRecipe upserts the (user, recipe) rating and recomputes the recipe's
// aggregate fields in the same transaction. The recipe row is locked first
// so concurrent rate calls recompute serially; if the recompute fails the
// upsert rolls back with it.
func (r *recipeRepository) RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, score int) (*entities.Rating, error) {
	rating := entities.Rating{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		Score:    score,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe entities.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", recipeID).
			First(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).Create(&rating).Error; err != nil {
			return err
		}

		// Re-read the stored row: an upsert that overwrote an existing
		// rating keeps the original primary key.
		if err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			First(&rating).Error; err != nil {
			return err
		}

		var scores []int
		if err := tx.Model(&entities.Rating{}).
			Where("recipe_id = ?", recipeID).
			Pluck("score", &scores).Error; err != nil {
			return err
		}

		count := len(scores)
		average := 0.0
		if count > 0 {
			sum := 0
			for _, s := range scores {
				sum += s
			}
			average = math.Round(float64(sum)/float64(count)*100) / 100
		}

		return tx.Model(&entities.Recipe{}).
			Where("id = ?", recipeID).
			Updates(map[string]interface{}{
				"ratings_count":  count,
				"average_rating": average,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

func (r *recipeRepository) GetRatingsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at asc").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *recipeRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *recipeRepository) GetCommentByID(ctx context.Context, id string) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *recipeRepository) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Comment{}).Error
}

func (r *recipeRepository) GetCommentsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
