package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"
	MessageSuccessLikeRecipe      = "recipe liked"
	MessageSuccessUnlikeRecipe    = "recipe unliked"
	MessageSuccessRateRecipe      = "recipe rated successfully"
	MessageSuccessAddComment      = "comment added successfully"
	MessageSuccessDeleteComment   = "comment deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"
	MessageFailedLikeRecipe      = "failed to like recipe"
	MessageFailedRateRecipe      = "failed to rate recipe"
	MessageFailedAddComment      = "failed to add comment"
	MessageFailedDeleteComment   = "failed to delete comment"

	ErrRecipeNotFound            = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess  = errors.New("unauthorized access to recipe")
	ErrInvalidFilterParam        = errors.New("invalid filter parameter")
	ErrInvalidScore              = errors.New("score must be between 1 and 5")
	ErrCommentNotFound           = errors.New("comment not found")
	ErrUnauthorizedCommentAccess = errors.New("unauthorized access to comment")
)

type (
	// RecipeAttribute is an inline tag or ingredient reference by name,
	// resolved with get-or-create semantics on write.
	RecipeAttribute struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	CreateRecipeRequest struct {
		Title       string            `json:"title" validate:"required,max=255"`
		Description string            `json:"description"`
		TimeMinutes int               `json:"time_minutes" validate:"required,min=1"`
		Price       float64           `json:"price" validate:"gte=0"`
		Link        string            `json:"link" validate:"omitempty,max=255"`
		Tags        []RecipeAttribute `json:"tags" validate:"omitempty,dive"`
		Ingredients []RecipeAttribute `json:"ingredients" validate:"omitempty,dive"`
	}

	// UpdateRecipeRequest uses pointers so an absent field is left
	// untouched while an empty list clears the relation.
	UpdateRecipeRequest struct {
		Title       *string            `json:"title" validate:"omitempty,max=255"`
		Description *string            `json:"description"`
		TimeMinutes *int               `json:"time_minutes" validate:"omitempty,min=1"`
		Price       *float64           `json:"price" validate:"omitempty,gte=0"`
		Link        *string            `json:"link" validate:"omitempty,max=255"`
		Tags        *[]RecipeAttribute `json:"tags" validate:"omitempty,dive"`
		Ingredients *[]RecipeAttribute `json:"ingredients" validate:"omitempty,dive"`
	}

	// RecipeFilter carries the parsed list-endpoint query parameters.
	RecipeFilter struct {
		TagIDs        []string
		IngredientIDs []string
	}

	RecipeResponse struct {
		ID            string              `json:"id"`
		Title         string              `json:"title"`
		TimeMinutes   int                 `json:"time_minutes"`
		Price         float64             `json:"price"`
		Link          string              `json:"link,omitempty"`
		Tags          []AttributeResponse `json:"tags"`
		Ingredients   []AttributeResponse `json:"ingredients"`
		AverageRating float64             `json:"average_rating"`
		RatingsCount  int                 `json:"ratings_count"`
		IsLiked       bool                `json:"is_liked"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Description string            `json:"description"`
		ImageURL    string            `json:"image_url,omitempty"`
		Ratings     []RatingResponse  `json:"ratings"`
		Comments    []CommentResponse `json:"comments"`
	}

	UploadRecipeImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	RateRecipeRequest struct {
		Score int `json:"score" validate:"required,min=1,max=5"`
	}

	RatingResponse struct {
		ID       string `json:"id"`
		UserID   string `json:"user_id"`
		RecipeID string `json:"recipe_id"`
		Score    int    `json:"score"`
	}

	AddCommentRequest struct {
		Content string `json:"content" validate:"required,max=1000"`
	}

	CommentResponse struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		RecipeID  string    `json:"recipe_id"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"created_at"`
	}
)
