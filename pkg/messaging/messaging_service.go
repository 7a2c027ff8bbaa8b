package messaging

import (
	"context"
	"errors"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MessagingService interface {
		CreateConversation(ctx context.Context, req domain.CreateConversationRequest, userID string) (domain.ConversationResponse, error)
		GetConversations(ctx context.Context, userID string, page, limit int) ([]domain.ConversationResponse, int64, error)
		GetMessages(ctx context.Context, conversationID, userID string, page, limit int) ([]domain.MessageResponse, int64, error)
		SendMessage(ctx context.Context, conversationID string, req domain.SendMessageRequest, userID string) (domain.MessageResponse, error)
	}

	messagingService struct {
		messagingRepository MessagingRepository
		userRepository      user.UserRepository
	}
)

func NewMessagingService(messagingRepository MessagingRepository, userRepository user.UserRepository) MessagingService {
	return &messagingService{
		messagingRepository: messagingRepository,
		userRepository:      userRepository,
	}
}

func toConversationResponse(conversation *entities.Conversation) domain.ConversationResponse {
	participants := make([]domain.UserResponse, 0, len(conversation.Participants))
	for _, participant := range conversation.Participants {
		participants = append(participants, domain.UserResponse{
			ID:       participant.ID.String(),
			Email:    participant.Email,
			Name:     participant.Name,
			IsActive: participant.IsActive,
		})
	}

	return domain.ConversationResponse{
		ID:           conversation.ID.String(),
		Participants: participants,
		CreatedAt:    conversation.CreatedAt,
	}
}

// CreateConversation records the conversation with the creator always
// included among the participants.
func (s *messagingService) CreateConversation(ctx context.Context, req domain.CreateConversationRequest, userID string) (domain.ConversationResponse, error) {
	creator, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ConversationResponse{}, domain.ErrUserNotFound
		}
		return domain.ConversationResponse{}, err
	}

	participants := []entities.User{*creator}
	for _, participantID := range req.ParticipantIDs {
		if participantID == userID {
			continue
		}
		participant, err := s.userRepository.GetUserByID(ctx, participantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ConversationResponse{}, domain.ErrUserNotFound
			}
			return domain.ConversationResponse{}, err
		}
		participants = append(participants, *participant)
	}

	conversation := &entities.Conversation{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Participants: participants,
	}
	if err := s.messagingRepository.CreateConversation(ctx, conversation); err != nil {
		return domain.ConversationResponse{}, err
	}

	return toConversationResponse(conversation), nil
}

func (s *messagingService) GetConversations(ctx context.Context, userID string, page, limit int) ([]domain.ConversationResponse, int64, error) {
	conversations, count, err := s.messagingRepository.GetConversations(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		result = append(result, toConversationResponse(conversation))
	}
	return result, count, nil
}

func (s *messagingService) GetMessages(ctx context.Context, conversationID, userID string, page, limit int) ([]domain.MessageResponse, int64, error) {
	if _, err := s.messagingRepository.GetConversationByID(ctx, conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrConversationNotFound
		}
		return nil, 0, err
	}

	isParticipant, err := s.messagingRepository.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, 0, err
	}
	if !isParticipant {
		return nil, 0, domain.ErrNotParticipant
	}

	messages, count, err := s.messagingRepository.GetMessages(ctx, conversationID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.MessageResponse, 0, len(messages))
	for _, message := range messages {
		result = append(result, domain.MessageResponse{
			ID:             message.ID.String(),
			ConversationID: message.ConversationID.String(),
			SenderID:       message.SenderID.String(),
			Content:        message.Content,
			CreatedAt:      message.CreatedAt,
		})
	}
	return result, count, nil
}

func (s *messagingService) SendMessage(ctx context.Context, conversationID string, req domain.SendMessageRequest, userID string) (domain.MessageResponse, error) {
	conversation, err := s.messagingRepository.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MessageResponse{}, domain.ErrConversationNotFound
		}
		return domain.MessageResponse{}, err
	}

	isParticipant, err := s.messagingRepository.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	if !isParticipant {
		return domain.MessageResponse{}, domain.ErrNotParticipant
	}

	senderUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MessageResponse{}, domain.ErrParseUUID
	}

	message := &entities.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		SenderID:       senderUUID,
		Content:        req.Content,
		CreatedAt:      time.Now(),
	}
	if err := s.messagingRepository.CreateMessage(ctx, message); err != nil {
		return domain.MessageResponse{}, err
	}

	return domain.MessageResponse{
		ID:             message.ID.String(),
		ConversationID: message.ConversationID.String(),
		SenderID:       message.SenderID.String(),
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}, nil
}
