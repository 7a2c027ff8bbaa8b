package domain

import (
	"errors"
)

var (
	MessageSuccessGetFollows = "success get follows"
	MessageSuccessFollow     = "user followed"
	MessageSuccessUnfollow   = "user unfollowed"

	MessageFailedGetFollows = "failed to get follows"
	MessageFailedFollow     = "failed to follow user"
	MessageFailedUnfollow   = "failed to unfollow user"

	ErrSelfFollow = errors.New("cannot follow yourself")
)

type (
	FollowResponse struct {
		ID         string `json:"id"`
		FollowerID string `json:"follower"`
		FolloweeID string `json:"followee"`
	}
)
