package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetConversations   = "success get conversations"
	MessageSuccessCreateConversation = "conversation created successfully"
	MessageSuccessGetMessages        = "success get messages"
	MessageSuccessSendMessage        = "message sent successfully"

	MessageFailedGetConversations   = "failed to get conversations"
	MessageFailedCreateConversation = "failed to create conversation"
	MessageFailedGetMessages        = "failed to get messages"
	MessageFailedSendMessage        = "failed to send message"

	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of the conversation")
)

type (
	CreateConversationRequest struct {
		ParticipantIDs []string `json:"participants" validate:"omitempty,dive,uuid"`
	}

	ConversationResponse struct {
		ID           string         `json:"id"`
		Participants []UserResponse `json:"participants"`
		CreatedAt    time.Time      `json:"created_at"`
	}

	SendMessageRequest struct {
		Content string `json:"content" validate:"required"`
	}

	MessageResponse struct {
		ID             string    `json:"id"`
		ConversationID string    `json:"conversation_id"`
		SenderID       string    `json:"sender_id"`
		Content        string    `json:"content"`
		CreatedAt      time.Time `json:"created_at"`
	}
)
