package domain

import (
	"errors"
)

var (
	MessageSuccessGetTags          = "success get tags"
	MessageSuccessUpdateTag        = "tag updated successfully"
	MessageSuccessDeleteTag        = "tag deleted successfully"
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"

	MessageFailedGetTags          = "failed to get tags"
	MessageFailedUpdateTag        = "failed to update tag"
	MessageFailedDeleteTag        = "failed to delete tag"
	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"

	ErrAttributeNotFound    = errors.New("tag or ingredient not found")
	ErrInvalidAssignedParam = errors.New("assigned_only must be 0 or 1")
)

type (
	UpdateAttributeRequest struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	AttributeResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
