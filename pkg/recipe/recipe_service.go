package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/utils/storage"
	"recipehub/pkg/attribute"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		GetRecipes(ctx context.Context, userID string, tags, ingredients string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (string, error)

		LikeRecipe(ctx context.Context, recipeID string, userID string) error
		UnlikeRecipe(ctx context.Context, recipeID string, userID string) error

		RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) (domain.RatingResponse, error)
		AddComment(ctx context.Context, recipeID string, req domain.AddCommentRequest, userID string) (domain.CommentResponse, error)
		DeleteComment(ctx context.Context, commentID string, userID string) error
	}

	recipeService struct {
		recipeRepository    RecipeRepository
		attributeRepository attribute.AttributeRepository
		s3                  storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, attributeRepository attribute.AttributeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:    recipeRepository,
		attributeRepository: attributeRepository,
		s3:                  s3,
	}
}

// parseIDList splits a comma separated filter parameter and validates every
// element. A malformed ID is a client error, never a silent fallback.
func parseIDList(param string) ([]string, error) {
	if param == "" {
		return nil, nil
	}

	parts := strings.Split(param, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, domain.ErrInvalidFilterParam
		}
		ids = append(ids, id.String())
	}
	return ids, nil
}

func (s *recipeService) toRecipeResponse(recipe *entities.Recipe, isLiked bool) domain.RecipeResponse {
	tags := make([]domain.AttributeResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.AttributeResponse{ID: tag.ID.String(), Name: tag.Name})
	}

	ingredients := make([]domain.AttributeResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, domain.AttributeResponse{ID: ingredient.ID.String(), Name: ingredient.Name})
	}

	return domain.RecipeResponse{
		ID:            recipe.ID.String(),
		Title:         recipe.Title,
		TimeMinutes:   recipe.TimeMinutes,
		Price:         recipe.Price,
		Link:          recipe.Link,
		Tags:          tags,
		Ingredients:   ingredients,
		AverageRating: recipe.AverageRating,
		RatingsCount:  recipe.RatingsCount,
		IsLiked:       isLiked,
	}
}

func (s *recipeService) toRecipeDetail(ctx context.Context, recipe *entities.Recipe, userID uuid.UUID) (domain.RecipeDetailResponse, error) {
	isLiked, err := s.recipeRepository.IsRecipeLiked(ctx, userID, recipe.ID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	ratings, err := s.recipeRepository.GetRatingsByRecipe(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	ratingResponses := make([]domain.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		ratingResponses = append(ratingResponses, domain.RatingResponse{
			ID:       rating.ID.String(),
			UserID:   rating.UserID.String(),
			RecipeID: rating.RecipeID.String(),
			Score:    rating.Score,
		})
	}

	comments, err := s.recipeRepository.GetCommentsByRecipe(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	commentResponses := make([]domain.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, domain.CommentResponse{
			ID:        comment.ID.String(),
			UserID:    comment.UserID.String(),
			RecipeID:  comment.RecipeID.String(),
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}

	return domain.RecipeDetailResponse{
		RecipeResponse: s.toRecipeResponse(recipe, isLiked),
		Description:    recipe.Description,
		ImageURL:       recipe.ImageURL,
		Ratings:        ratingResponses,
		Comments:       commentResponses,
	}, nil
}

func (s *recipeService) resolveTags(ctx context.Context, userID uuid.UUID, attrs []domain.RecipeAttribute) ([]entities.Tag, error) {
	tags := make([]entities.Tag, 0, len(attrs))
	for _, attr := range attrs {
		tag, err := s.attributeRepository.GetOrCreateTag(ctx, userID, attr.Name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, userID uuid.UUID, attrs []domain.RecipeAttribute) ([]entities.Ingredient, error) {
	ingredients := make([]entities.Ingredient, 0, len(attrs))
	for _, attr := range attrs {
		ingredient, err := s.attributeRepository.GetOrCreateIngredient(ctx, userID, attr.Name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      userUUID,
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	tags, err := s.resolveTags(ctx, userUUID, req.Tags)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if err := s.recipeRepository.ReplaceTags(ctx, recipe, tags); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	ingredients, err := s.resolveIngredients(ctx, userUUID, req.Ingredients)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if err := s.recipeRepository.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	recipe.Tags = tags
	recipe.Ingredients = ingredients
	return s.toRecipeDetail(ctx, recipe, userUUID)
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string, tags, ingredients string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	tagIDs, err := parseIDList(tags)
	if err != nil {
		return nil, 0, err
	}
	ingredientIDs, err := parseIDList(ingredients)
	if err != nil {
		return nil, 0, err
	}

	filter := domain.RecipeFilter{TagIDs: tagIDs, IngredientIDs: ingredientIDs}
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, userID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
	}
	liked, err := s.recipeRepository.LikedRecipeIDs(ctx, userUUID, recipeIDs)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.toRecipeResponse(recipe, liked[recipe.ID]))
	}
	return result, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	return s.toRecipeDetail(ctx, recipe, userUUID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	if recipe.UserID.String() != userID {
		return domain.RecipeDetailResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	if req.Tags != nil {
		tags, err := s.resolveTags(ctx, userUUID, *req.Tags)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		if err := s.recipeRepository.ReplaceTags(ctx, recipe, tags); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		recipe.Tags = tags
	}
	if req.Ingredients != nil {
		ingredients, err := s.resolveIngredients(ctx, userUUID, *req.Ingredients)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		if err := s.recipeRepository.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		recipe.Ingredients = ingredients
	}

	return s.toRecipeDetail(ctx, recipe, userUUID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.UserID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (string, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", err
	}

	if recipe.UserID.String() != userID {
		return "", domain.ErrUnauthorizedRecipeAccess
	}

	fileName := fmt.Sprintf("recipe-%s", recipe.ID.String())
	var objectKey string
	var uploadErr error

	if recipe.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
	}
	if uploadErr != nil {
		return "", uploadErr
	}

	recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return "", err
	}

	return recipe.ImageURL, nil
}

func (s *recipeService) LikeRecipe(ctx context.Context, recipeID string, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	return s.recipeRepository.LikeRecipe(ctx, userUUID, recipe.ID)
}

func (s *recipeService) UnlikeRecipe(ctx context.Context, recipeID string, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	return s.recipeRepository.UnlikeRecipe(ctx, userUUID, recipe.ID)
}

func (s *recipeService) RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) (domain.RatingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RatingResponse{}, domain.ErrParseUUID
	}

	if req.Score < 1 || req.Score > 5 {
		return domain.RatingResponse{}, domain.ErrInvalidScore
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RatingResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RatingResponse{}, err
	}

	rating, err := s.recipeRepository.RateRecipe(ctx, userUUID, recipe.ID, req.Score)
	if err != nil {
		return domain.RatingResponse{}, err
	}

	return domain.RatingResponse{
		ID:       rating.ID.String(),
		UserID:   rating.UserID.String(),
		RecipeID: rating.RecipeID.String(),
		Score:    rating.Score,
	}, nil
}

func (s *recipeService) AddComment(ctx context.Context, recipeID string, req domain.AddCommentRequest, userID string) (domain.CommentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CommentResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommentResponse{}, domain.ErrRecipeNotFound
		}
		return domain.CommentResponse{}, err
	}

	comment := &entities.Comment{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipe.ID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := s.recipeRepository.CreateComment(ctx, comment); err != nil {
		return domain.CommentResponse{}, err
	}

	return domain.CommentResponse{
		ID:        comment.ID.String(),
		UserID:    comment.UserID.String(),
		RecipeID:  comment.RecipeID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *recipeService) DeleteComment(ctx context.Context, commentID string, userID string) error {
	comment, err := s.recipeRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}

	if comment.UserID.String() != userID {
		return domain.ErrUnauthorizedCommentAccess
	}

	return s.recipeRepository.DeleteComment(ctx, commentID)
}
