package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/social"

	"github.com/gofiber/fiber/v2"
)

type (
	SocialHandler interface {
		Follow(c *fiber.Ctx) error
		Unfollow(c *fiber.Ctx) error
		GetFollows(c *fiber.Ctx) error
	}

	socialHandler struct {
		socialService social.SocialService
	}
)

func NewSocialHandler(socialService social.SocialService) SocialHandler {
	return &socialHandler{socialService: socialService}
}

func (h *socialHandler) Follow(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	followeeID := c.Params("id")

	if err := h.socialService.Follow(c.Context(), userID, followeeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedFollow, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessFollow)
}

func (h *socialHandler) Unfollow(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	followeeID := c.Params("id")

	if err := h.socialService.Unfollow(c.Context(), userID, followeeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUnfollow, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnfollow)
}

func (h *socialHandler) GetFollows(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	follows, count, err := h.socialService.GetFollows(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetFollows, err)
	}

	return presenters.SuccessResponse(
		c,
		presenters.NewPage(c, follows, count, page, limit),
		fiber.StatusOK,
		domain.MessageSuccessGetFollows,
	)
}
