package attribute

import (
	"context"
	"errors"

	"recipehub/domain"

	"gorm.io/gorm"
)

type (
	AttributeService interface {
		GetTags(ctx context.Context, userID string, assignedOnly string, page, limit int) ([]domain.AttributeResponse, int64, error)
		UpdateTag(ctx context.Context, id string, req domain.UpdateAttributeRequest, userID string) (domain.AttributeResponse, error)
		DeleteTag(ctx context.Context, id string, userID string) error

		GetIngredients(ctx context.Context, userID string, assignedOnly string, page, limit int) ([]domain.AttributeResponse, int64, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateAttributeRequest, userID string) (domain.AttributeResponse, error)
		DeleteIngredient(ctx context.Context, id string, userID string) error
	}

	attributeService struct {
		attributeRepository AttributeRepository
	}
)

func NewAttributeService(attributeRepository AttributeRepository) AttributeService {
	return &attributeService{attributeRepository: attributeRepository}
}

// parseAssignedOnly accepts the 0/1 query flag; anything else is a client
// error, not a silent fallback.
func parseAssignedOnly(value string) (bool, error) {
	switch value {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, domain.ErrInvalidAssignedParam
	}
}

func (s *attributeService) GetTags(ctx context.Context, userID string, assignedOnly string, page, limit int) ([]domain.AttributeResponse, int64, error) {
	assigned, err := parseAssignedOnly(assignedOnly)
	if err != nil {
		return nil, 0, err
	}

	tags, count, err := s.attributeRepository.GetTags(ctx, userID, assigned, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.AttributeResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, domain.AttributeResponse{
			ID:   tag.ID.String(),
			Name: tag.Name,
		})
	}
	return result, count, nil
}

func (s *attributeService) UpdateTag(ctx context.Context, id string, req domain.UpdateAttributeRequest, userID string) (domain.AttributeResponse, error) {
	tag, err := s.attributeRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AttributeResponse{}, domain.ErrAttributeNotFound
		}
		return domain.AttributeResponse{}, err
	}

	// Ownership scoping returns not-found rather than revealing the row.
	if tag.UserID.String() != userID {
		return domain.AttributeResponse{}, domain.ErrAttributeNotFound
	}

	tag.Name = req.Name
	if err := s.attributeRepository.UpdateTag(ctx, tag); err != nil {
		return domain.AttributeResponse{}, err
	}

	return domain.AttributeResponse{ID: tag.ID.String(), Name: tag.Name}, nil
}

func (s *attributeService) DeleteTag(ctx context.Context, id string, userID string) error {
	tag, err := s.attributeRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAttributeNotFound
		}
		return err
	}

	if tag.UserID.String() != userID {
		return domain.ErrAttributeNotFound
	}

	return s.attributeRepository.DeleteTag(ctx, id)
}

func (s *attributeService) GetIngredients(ctx context.Context, userID string, assignedOnly string, page, limit int) ([]domain.AttributeResponse, int64, error) {
	assigned, err := parseAssignedOnly(assignedOnly)
	if err != nil {
		return nil, 0, err
	}

	ingredients, count, err := s.attributeRepository.GetIngredients(ctx, userID, assigned, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.AttributeResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, domain.AttributeResponse{
			ID:   ingredient.ID.String(),
			Name: ingredient.Name,
		})
	}
	return result, count, nil
}

func (s *attributeService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateAttributeRequest, userID string) (domain.AttributeResponse, error) {
	ingredient, err := s.attributeRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AttributeResponse{}, domain.ErrAttributeNotFound
		}
		return domain.AttributeResponse{}, err
	}

	if ingredient.UserID.String() != userID {
		return domain.AttributeResponse{}, domain.ErrAttributeNotFound
	}

	ingredient.Name = req.Name
	if err := s.attributeRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return domain.AttributeResponse{}, err
	}

	return domain.AttributeResponse{ID: ingredient.ID.String(), Name: ingredient.Name}, nil
}

func (s *attributeService) DeleteIngredient(ctx context.Context, id string, userID string) error {
	ingredient, err := s.attributeRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAttributeNotFound
		}
		return err
	}

	if ingredient.UserID.String() != userID {
		return domain.ErrAttributeNotFound
	}

	return s.attributeRepository.DeleteIngredient(ctx, id)
}
