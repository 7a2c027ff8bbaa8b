package messaging

import (
	"context"

	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	MessagingRepository interface {
		CreateConversation(ctx context.Context, conversation *entities.Conversation) error
		GetConversationByID(ctx context.Context, id string) (*entities.Conversation, error)
		GetConversations(ctx context.Context, userID string, page, limit int) ([]*entities.Conversation, int64, error)
		IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
		CreateMessage(ctx context.Context, message *entities.Message) error
		GetMessages(ctx context.Context, conversationID string, page, limit int) ([]*entities.Message, int64, error)
	}

	messagingRepository struct {
		db *gorm.DB
	}
)

func NewMessagingRepository(db *gorm.DB) MessagingRepository {
	return &messagingRepository{db: db}
}

func (r *messagingRepository) CreateConversation(ctx context.Context, conversation *entities.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *messagingRepository) GetConversationByID(ctx context.Context, id string) (*entities.Conversation, error) {
	var conversation entities.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", id).
		First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *messagingRepository) conversationQuery(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Joins("JOIN conversation_participants ON conversation_participants.conversation_id = conversations.id").
		Where("conversation_participants.user_id = ?", userID)
}

func (r *messagingRepository) GetConversations(ctx context.Context, userID string, page, limit int) ([]*entities.Conversation, int64, error) {
	var conversations []*entities.Conversation
	var count int64
	offset := (page - 1) * limit

	if err := r.conversationQuery(ctx, userID).
		Distinct("conversations.id").
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.conversationQuery(ctx, userID).
		Distinct("conversations.*").
		Preload("Participants").
		Order("conversations.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&conversations).Error; err != nil {
		return nil, 0, err
	}

	return conversations, count, nil
}

func (r *messagingRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *messagingRepository) CreateMessage(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messagingRepository) GetMessages(ctx context.Context, conversationID string, page, limit int) ([]*entities.Message, int64, error) {
	var messages []*entities.Message
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, count, nil
}
