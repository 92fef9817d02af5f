package routes

import (
	"CookShare-Backend/internal/api/handlers"
	"CookShare-Backend/internal/middleware"
	"CookShare-Backend/pkg/jwt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Recipes()
	c.GuestRoute()

	// Everything unmatched is a plain 404.
	c.App.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not Found"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		auth.Patch("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
	}
}

func (c *Config) Recipes() {
	requireAuth := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	{
		recipes.Get("", optionalAuth, c.RecipeHandler.GetRecipes)
		recipes.Post("", requireAuth, c.RecipeHandler.CreateRecipe)
		recipes.Post("/upload/image", requireAuth, c.RecipeHandler.UploadImage)
		recipes.Get("/:id", optionalAuth, c.RecipeHandler.GetRecipeDetail)
		recipes.Put("/:id", requireAuth, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", requireAuth, c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/like", requireAuth, c.RecipeHandler.ToggleLike)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
