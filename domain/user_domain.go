package domain

import (
	"errors"
	"time"
)

var (
	ErrRegisterFieldsRequired = errors.New("email, password and username are required")
	ErrLoginFieldsRequired    = errors.New("email and password are required")
	ErrCredentialTaken        = errors.New("email or username already in use")
	ErrUsernameTaken          = errors.New("username already in use")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Username string `json:"username" validate:"required,min=2,max=32"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		Username *string `json:"username,omitempty" form:"username" validate:"omitempty,min=2,max=32"`
		Bio      *string `json:"bio,omitempty" form:"bio" validate:"omitempty,max=500"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Username  string    `json:"username"`
		AvatarURL *string   `json:"avatar_url,omitempty"`
		Bio       *string   `json:"bio,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)
