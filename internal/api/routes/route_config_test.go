package routes

import (
	"CookShare-Backend/domain"
	"CookShare-Backend/entities"
	"CookShare-Backend/internal/api/handlers"
	"CookShare-Backend/internal/middleware"
	"CookShare-Backend/internal/utils"
	"CookShare-Backend/internal/utils/storage"
	"CookShare-Backend/pkg/jwt"
	"CookShare-Backend/pkg/recipe"
	"CookShare-Backend/pkg/user"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type RoutesTestSuite struct {
	suite.Suite
	app *fiber.App
}

func (s *RoutesTestSuite) SetupTest() {
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

	utils.InitValidator()

	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(user.NewUserRepository(db), jwtService, store)
	recipeService := recipe.NewRecipeService(recipe.NewRecipeRepository(db), store)

	app := fiber.New()
	routeConfig := Config{
		App:           app,
		UserHandler:   handlers.NewUserHandler(userService, utils.Validate),
		RecipeHandler: handlers.NewRecipeHandler(recipeService, utils.Validate),
		Middleware:    middleware.NewMiddleware(),
		JWTService:    jwtService,
	}
	routeConfig.Setup()

	s.app = app
}

func (s *RoutesTestSuite) request(method, target, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return res
}

func (s *RoutesTestSuite) decode(res *http.Response, out any) {
	defer res.Body.Close()
	s.Require().NoError(json.NewDecoder(res.Body).Decode(out))
}

func (s *RoutesTestSuite) register(email, username string) string {
	res := s.request(fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "supersecret",
		"username": username,
	})
	s.Require().Equal(fiber.StatusCreated, res.StatusCode)

	var auth domain.AuthResponse
	s.decode(res, &auth)
	s.Require().NotEmpty(auth.Token)
	return auth.Token
}

func (s *RoutesTestSuite) TestHealth() {
	res := s.request(fiber.MethodGet, "/health", "", nil)
	s.Equal(fiber.StatusOK, res.StatusCode)

	var body map[string]string
	s.decode(res, &body)
	s.Equal("ok", body["status"])
	s.NotEmpty(body["timestamp"])
}

func (s *RoutesTestSuite) TestUnmatchedRouteIsNotFound() {
	res := s.request(fiber.MethodGet, "/api/nope", "", nil)
	s.Equal(fiber.StatusNotFound, res.StatusCode)

	var body map[string]string
	s.decode(res, &body)
	s.Equal("Not Found", body["error"])
}

func (s *RoutesTestSuite) TestCreateRecipeRequiresAuth() {
	res := s.request(fiber.MethodPost, "/api/recipes", "", fiber.Map{"title": "Kimchi Stew"})
	s.Equal(fiber.StatusUnauthorized, res.StatusCode)
}

func (s *RoutesTestSuite) TestGarbageTokenRejected() {
	res := s.request(fiber.MethodGet, "/api/auth/me", "not-a-token", nil)
	s.Equal(fiber.StatusUnauthorized, res.StatusCode)
}

func (s *RoutesTestSuite) TestRegisterLoginMe() {
	s.register("cook@example.com", "cook")

	res := s.request(fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "cook@example.com",
		"password": "supersecret",
	})
	s.Require().Equal(fiber.StatusOK, res.StatusCode)

	var auth domain.AuthResponse
	s.decode(res, &auth)
	s.Equal("cook", auth.User.Username)

	me := s.request(fiber.MethodGet, "/api/auth/me", auth.Token, nil)
	s.Require().Equal(fiber.StatusOK, me.StatusCode)

	var profile domain.UserResponse
	s.decode(me, &profile)
	s.Equal("cook@example.com", profile.Email)
}

func (s *RoutesTestSuite) TestRegisterShortPasswordRejected() {
	res := s.request(fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "cook@example.com",
		"password": "short",
		"username": "cook",
	})
	s.Equal(fiber.StatusBadRequest, res.StatusCode)

	var body map[string]string
	s.decode(res, &body)
	s.NotEmpty(body["error"])
}

func (s *RoutesTestSuite) TestRegisterMissingFieldsRejected() {
	res := s.request(fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "cook@example.com",
	})
	s.Equal(fiber.StatusBadRequest, res.StatusCode)
}

func (s *RoutesTestSuite) TestLoginMissingFieldsRejected() {
	res := s.request(fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "cook@example.com",
	})
	s.Equal(fiber.StatusBadRequest, res.StatusCode)
}

func (s *RoutesTestSuite) TestDuplicateRegisterConflicts() {
	s.register("cook@example.com", "cook")

	res := s.request(fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "cook@example.com",
		"password": "supersecret",
		"username": "cook2",
	})
	s.Equal(fiber.StatusConflict, res.StatusCode)
}

func (s *RoutesTestSuite) TestBadLoginIsUnauthorized() {
	s.register("cook@example.com", "cook")

	res := s.request(fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "cook@example.com",
		"password": "wrongwrong",
	})
	s.Equal(fiber.StatusUnauthorized, res.StatusCode)
}

func (s *RoutesTestSuite) TestRecipeLifecycle() {
	token := s.register("cook@example.com", "cook")

	created := s.request(fiber.MethodPost, "/api/recipes", token, fiber.Map{
		"title":      "Kimchi Stew",
		"difficulty": "easy",
		"ingredients": []fiber.Map{
			{"name": "kimchi", "amount": "200", "unit": "g"},
		},
		"steps": []fiber.Map{
			{"instruction": "Boil"},
		},
		"tags": []string{"korean"},
	})
	s.Require().Equal(fiber.StatusCreated, created.StatusCode)

	var createdBody map[string]string
	s.decode(created, &createdBody)
	recipeID := createdBody["id"]
	s.Require().NotEmpty(recipeID)

	detail := s.request(fiber.MethodGet, "/api/recipes/"+recipeID, "", nil)
	s.Require().Equal(fiber.StatusOK, detail.StatusCode)

	var body domain.RecipeDetail
	s.decode(detail, &body)
	s.Equal("Kimchi Stew", body.Title)
	s.Equal("cook", body.AuthorName)
	s.Equal([]string{"korean"}, body.Tags)
	s.Require().Len(body.Ingredients, 1)
	s.Equal("kimchi", body.Ingredients[0].Name)
	s.Require().Len(body.Steps, 1)
	s.Equal(1, body.Steps[0].StepNumber)
	s.Equal(int64(1), body.ViewCount)

	liked := s.request(fiber.MethodPost, "/api/recipes/"+recipeID+"/like", token, nil)
	s.Require().Equal(fiber.StatusOK, liked.StatusCode)
	var toggle domain.ToggleLikeResponse
	s.decode(liked, &toggle)
	s.True(toggle.Liked)

	updated := s.request(fiber.MethodPut, "/api/recipes/"+recipeID, token, fiber.Map{
		"title": "Kimchi Jjigae",
	})
	s.Require().Equal(fiber.StatusOK, updated.StatusCode)

	listed := s.request(fiber.MethodGet, "/api/recipes?tag=korean", "", nil)
	s.Require().Equal(fiber.StatusOK, listed.StatusCode)
	var list domain.RecipeListResponse
	s.decode(listed, &list)
	s.Equal(int64(1), list.Total)
	s.Require().Len(list.Recipes, 1)
	s.Equal("Kimchi Jjigae", list.Recipes[0].Title)
	s.Equal(int64(1), list.Recipes[0].LikeCount)

	deleted := s.request(fiber.MethodDelete, "/api/recipes/"+recipeID, token, nil)
	s.Require().Equal(fiber.StatusOK, deleted.StatusCode)

	gone := s.request(fiber.MethodGet, "/api/recipes/"+recipeID, "", nil)
	s.Equal(fiber.StatusNotFound, gone.StatusCode)
}

func (s *RoutesTestSuite) TestUpdateByStrangerForbidden() {
	ownerToken := s.register("cook@example.com", "cook")
	strangerToken := s.register("guest@example.com", "guest")

	created := s.request(fiber.MethodPost, "/api/recipes", ownerToken, fiber.Map{"title": "Kimchi Stew"})
	s.Require().Equal(fiber.StatusCreated, created.StatusCode)
	var createdBody map[string]string
	s.decode(created, &createdBody)

	res := s.request(fiber.MethodPut, "/api/recipes/"+createdBody["id"], strangerToken, fiber.Map{
		"title": "Stolen Stew",
	})
	s.Equal(fiber.StatusForbidden, res.StatusCode)
}

func (s *RoutesTestSuite) TestUploadImageWithoutFile() {
	token := s.register("cook@example.com", "cook")

	req := httptest.NewRequest(fiber.MethodPost, "/api/recipes/upload/image", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusBadRequest, res.StatusCode)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
