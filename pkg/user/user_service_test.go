package user

import (
	"CookShare-Backend/domain"
	"CookShare-Backend/entities"
	"CookShare-Backend/internal/utils/storage"
	"CookShare-Backend/pkg/jwt"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type UserServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository UserRepository
	jwtService jwt.JWTService
	storage    storage.Storage
	service    UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(s.T().Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Step{},
		&entities.Tag{},
		&entities.RecipeTag{},
		&entities.Like{},
	))

	store, err := storage.NewLocalStorage(s.T().TempDir(), "http://localhost:4000")
	s.Require().NoError(err)

	s.db = db
	s.repository = NewUserRepository(db)
	s.jwtService = jwt.NewJWTService()
	s.storage = store
	s.service = NewUserService(s.repository, s.jwtService, s.storage)
}

func (s *UserServiceTestSuite) register(email, username string) domain.AuthResponse {
	res, err := s.service.Register(context.Background(), domain.RegisterRequest{
		Email:    email,
		Password: "secret-password",
		Username: username,
	})
	s.Require().NoError(err)
	return res
}

func (s *UserServiceTestSuite) TestRegisterIssuesUsableToken() {
	res := s.register("cook@example.com", "cook")

	s.NotEmpty(res.Token)
	s.Equal("cook@example.com", res.User.Email)
	s.Equal("cook", res.User.Username)

	userID, email, err := s.jwtService.GetUserByToken(res.Token)
	s.Require().NoError(err)
	s.Equal(res.User.ID, userID)
	s.Equal(res.User.Email, email)
}

func (s *UserServiceTestSuite) TestRegisterNeverStoresPlaintext() {
	res := s.register("cook@example.com", "cook")

	var stored entities.User
	s.Require().NoError(s.db.Where("id = ?", res.User.ID).First(&stored).Error)
	s.NotEqual("secret-password", stored.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-password")))
}

func (s *UserServiceTestSuite) TestDuplicateEmailOrUsernameConflicts() {
	s.register("cook@example.com", "cook")

	_, err := s.service.Register(context.Background(), domain.RegisterRequest{
		Email:    "cook@example.com",
		Password: "another-password",
		Username: "othername",
	})
	s.ErrorIs(err, domain.ErrCredentialTaken)

	_, err = s.service.Register(context.Background(), domain.RegisterRequest{
		Email:    "other@example.com",
		Password: "another-password",
		Username: "cook",
	})
	s.ErrorIs(err, domain.ErrCredentialTaken)
}

// racingUserRepository reports credentials as free even when they are
// not, standing in for the window between the pre-check and the insert.
type racingUserRepository struct {
	UserRepository
}

func (racingUserRepository) EmailOrUsernameTaken(ctx context.Context, email, username string) (bool, error) {
	return false, nil
}

func (s *UserServiceTestSuite) TestRegisterInsertRaceSurfacesConflict() {
	s.register("cook@example.com", "cook")

	racing := NewUserService(racingUserRepository{s.repository}, s.jwtService, s.storage)
	_, err := racing.Register(context.Background(), domain.RegisterRequest{
		Email:    "cook@example.com",
		Password: "another-password",
		Username: "cook",
	})
	s.ErrorIs(err, domain.ErrCredentialTaken)
}

func (s *UserServiceTestSuite) TestLoginFailuresAreIndistinguishable() {
	s.register("cook@example.com", "cook")

	_, err := s.service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong-password",
	})
	s.ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret-password",
	})
	s.ErrorIs(err, domain.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestLoginReturnsProfile() {
	s.register("cook@example.com", "cook")

	res, err := s.service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	s.Require().NoError(err)
	s.NotEmpty(res.Token)
	s.Equal("cook", res.User.Username)
}

func (s *UserServiceTestSuite) TestMeUnknownUser() {
	_, err := s.service.Me(context.Background(), "11111111-1111-1111-1111-111111111111")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestUpdateProfileKeepsUntouchedFields() {
	res := s.register("cook@example.com", "cook")

	bio := "I cook things."
	updated, err := s.service.UpdateProfile(context.Background(), res.User.ID, domain.UpdateProfileRequest{Bio: &bio}, nil)
	s.Require().NoError(err)
	s.Equal("cook", updated.Username)
	s.Require().NotNil(updated.Bio)
	s.Equal(bio, *updated.Bio)
}

func (s *UserServiceTestSuite) TestUpdateProfileUsernameConflict() {
	s.register("cook@example.com", "cook")
	other := s.register("other@example.com", "other")

	taken := "cook"
	_, err := s.service.UpdateProfile(context.Background(), other.User.ID, domain.UpdateProfileRequest{Username: &taken}, nil)
	s.ErrorIs(err, domain.ErrUsernameTaken)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
