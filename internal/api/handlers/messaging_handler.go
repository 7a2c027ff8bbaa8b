package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/messaging"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MessagingHandler interface {
		CreateConversation(c *fiber.Ctx) error
		GetConversations(c *fiber.Ctx) error
		GetMessages(c *fiber.Ctx) error
		SendMessage(c *fiber.Ctx) error
	}

	messagingHandler struct {
		messagingService messaging.MessagingService
		validator        *validator.Validate
	}
)

func NewMessagingHandler(messagingService messaging.MessagingService, validator *validator.Validate) MessagingHandler {
	return &messagingHandler{
		messagingService: messagingService,
		validator:        validator,
	}
}

func (h *messagingHandler) CreateConversation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateConversationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateConversation, err)
	}

	res, err := h.messagingService.CreateConversation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateConversation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateConversation)
}

func (h *messagingHandler) GetConversations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	conversations, count, err := h.messagingService.GetConversations(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetConversations, err)
	}

	return presenters.SuccessResponse(
		c,
		presenters.NewPage(c, conversations, count, page, limit),
		fiber.StatusOK,
		domain.MessageSuccessGetConversations,
	)
}

func (h *messagingHandler) GetMessages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	conversationID := c.Params("id")
	page, limit := parsePagination(c)

	messages, count, err := h.messagingService.GetMessages(c.Context(), conversationID, userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetMessages, err)
	}

	return presenters.SuccessResponse(
		c,
		presenters.NewPage(c, messages, count, page, limit),
		fiber.StatusOK,
		domain.MessageSuccessGetMessages,
	)
}

func (h *messagingHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	conversationID := c.Params("id")
	req := new(domain.SendMessageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	res, err := h.messagingService.SendMessage(c.Context(), conversationID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSendMessage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSendMessage)
}
