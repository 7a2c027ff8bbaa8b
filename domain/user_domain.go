package domain

import (
	"errors"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetMe         = "success get current user"
	MessageSuccessUpdateUser    = "user updated successfully"
	MessageSuccessGetProfile    = "success get user profile"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetMe      = "failed to get current user"
	MessageFailedUpdateUser = "failed to update user"
	MessageFailedGetProfile = "failed to get user profile"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required,max=255"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		Name     string `json:"name" validate:"omitempty,max=255"`
		Password string `json:"password" validate:"omitempty,min=8"`
	}

	UserResponse struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		IsActive bool   `json:"is_active"`
	}

	ProfileResponse struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		FollowersCount int64  `json:"followers_count"`
		FollowingCount int64  `json:"following_count"`
	}
)
