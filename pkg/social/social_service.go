package social

import (
	"context"
	"errors"

	"recipehub/domain"
	"recipehub/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SocialService interface {
		Follow(ctx context.Context, followerID, followeeID string) error
		Unfollow(ctx context.Context, followerID, followeeID string) error
		GetFollows(ctx context.Context, followerID string, page, limit int) ([]domain.FollowResponse, int64, error)
	}

	socialService struct {
		followRepository FollowRepository
		userRepository   user.UserRepository
	}
)

func NewSocialService(followRepository FollowRepository, userRepository user.UserRepository) SocialService {
	return &socialService{
		followRepository: followRepository,
		userRepository:   userRepository,
	}
}

func (s *socialService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return domain.ErrSelfFollow
	}

	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return domain.ErrParseUUID
	}

	followee, err := s.userRepository.GetUserByID(ctx, followeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.followRepository.Follow(ctx, followerUUID, followee.ID)
}

func (s *socialService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return domain.ErrParseUUID
	}

	followee, err := s.userRepository.GetUserByID(ctx, followeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.followRepository.Unfollow(ctx, followerUUID, followee.ID)
}

func (s *socialService) GetFollows(ctx context.Context, followerID string, page, limit int) ([]domain.FollowResponse, int64, error) {
	follows, count, err := s.followRepository.GetFollows(ctx, followerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.FollowResponse, 0, len(follows))
	for _, follow := range follows {
		result = append(result, domain.FollowResponse{
			ID:         follow.ID.String(),
			FollowerID: follow.FollowerID.String(),
			FolloweeID: follow.FolloweeID.String(),
		})
	}
	return result, count, nil
}
