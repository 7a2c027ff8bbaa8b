package handlers

import (
	"errors"

	"recipehub/domain"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// statusForError maps service errors onto HTTP statuses so every handler
// reports missing rows and ownership failures the same way.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrAttributeNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrConversationNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUnauthorizedCommentAccess),
		errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}
