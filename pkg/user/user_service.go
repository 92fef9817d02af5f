package user

import (
	"CookShare-Backend/domain"
	"CookShare-Backend/entities"
	"CookShare-Backend/internal/utils/mailing"
	"CookShare-Backend/internal/utils/storage"
	"CookShare-Backend/pkg/jwt"
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost matches the hashing cost used when the accounts were first
// created; changing it only affects new hashes.
const bcryptCost = 12

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest, avatar *multipart.FileHeader) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		storage        storage.Storage
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, storage storage.Storage) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		storage:        storage,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	taken, err := s.userRepository.EmailOrUsernameTaken(ctx, req.Email, req.Username)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if taken {
		return domain.AuthResponse{}, domain.ErrCredentialTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := entities.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		// A concurrent registration can slip past the pre-check and hit
		// the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.AuthResponse{}, domain.ErrCredentialTaken
		}
		return domain.AuthResponse{}, err
	}

	if mailing.Enabled() {
		go func(email, username string) {
			if err := mailing.SendWelcomeMail(email, username); err != nil {
				log.Printf("welcome mail to %s failed: %v", email, err)
			}
		}(user.Email, user.Username)
	}

	token := s.jwtService.GenerateToken(user.ID.String(), user.Email)
	return domain.AuthResponse{Token: token, User: toUserResponse(&user)}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password, so callers cannot probe
			// which emails are registered.
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateToken(user.ID.String(), user.Email)
	return domain.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest, avatar *multipart.FileHeader) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.userRepository.UsernameTakenByOther(ctx, *req.Username, userID)
		if err != nil {
			return domain.UserResponse{}, err
		}
		if taken {
			return domain.UserResponse{}, domain.ErrUsernameTaken
		}
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if avatar != nil {
		result, err := s.storage.UploadFile(avatar, "avatars", storage.AllowImage...)
		if err != nil {
			return domain.UserResponse{}, err
		}
		if user.AvatarURL != nil {
			if oldKey := s.storage.GetObjectKey(*user.AvatarURL); oldKey != "" {
				_ = s.storage.DeleteFile(oldKey)
			}
		}
		user.AvatarURL = &result.URL
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}
