package attribute

import (
	"context"

	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	AttributeRepository interface {
		GetOrCreateTag(ctx context.Context, userID uuid.UUID, name string) (*entities.Tag, error)
		GetTagByID(ctx context.Context, id string) (*entities.Tag, error)
		GetTags(ctx context.Context, userID string, assignedOnly bool, page, limit int) ([]*entities.Tag, int64, error)
		UpdateTag(ctx context.Context, tag *entities.Tag) error
		DeleteTag(ctx context.Context, id string) error

		GetOrCreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context, userID string, assignedOnly bool, page, limit int) ([]*entities.Ingredient, int64, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, id string) error
	}

	attributeRepository struct {
		db *gorm.DB
	}
)

func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

// conflictOwnerName makes the insert half of get-or-create a no-op when
// the (owner, name) row already exists, so concurrent creates never fail
// on the unique index.
var conflictOwnerName = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
	DoNothing: true,
}

func (r *attributeRepository) GetOrCreateTag(ctx context.Context, userID uuid.UUID, name string) (*entities.Tag, error) {
	tag := entities.Tag{ID: uuid.New(), UserID: userID, Name: name}

	result := r.db.WithContext(ctx).Clauses(conflictOwnerName).Create(&tag)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, name).
			First(&tag).Error; err != nil {
			return nil, err
		}
	}
	return &tag, nil
}

func (r *attributeRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *attributeRepository) GetTags(ctx context.Context, userID string, assignedOnly bool, page, limit int) ([]*entities.Tag, int64, error) {
	var tags []*entities.Tag
	var count int64
	offset := (page - 1) * limit

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entities.Tag{}).Where("tags.user_id = ?", userID)
		if assignedOnly {
			q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id")
		}
		return q
	}

	if err := query().Distinct("tags.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query().
		Distinct("tags.*").
		Order("tags.name DESC").
		Offset(offset).
		Limit(limit).
		Find(&tags).Error; err != nil {
		return nil, 0, err
	}

	return tags, count, nil
}

func (r *attributeRepository) UpdateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *attributeRepository) DeleteTag(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Tag{}).Error
	})
}

func (r *attributeRepository) GetOrCreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*entities.Ingredient, error) {
	ingredient := entities.Ingredient{ID: uuid.New(), UserID: userID, Name: name}

	result := r.db.WithContext(ctx).Clauses(conflictOwnerName).Create(&ingredient)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, name).
			First(&ingredient).Error; err != nil {
			return nil, err
		}
	}
	return &ingredient, nil
}

func (r *attributeRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *attributeRepository) GetIngredients(ctx context.Context, userID string, assignedOnly bool, page, limit int) ([]*entities.Ingredient, int64, error) {
	var ingredients []*entities.Ingredient
	var count int64
	offset := (page - 1) * limit

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entities.Ingredient{}).Where("ingredients.user_id = ?", userID)
		if assignedOnly {
			q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id")
		}
		return q
	}

	if err := query().Distinct("ingredients.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query().
		Distinct("ingredients.*").
		Order("ingredients.name DESC").
		Offset(offset).
		Limit(limit).
		Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}

	return ingredients, count, nil
}

func (r *attributeRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *attributeRepository) DeleteIngredient(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Ingredient{}).Error
	})
}
