package routes

import (
	"recipehub/internal/api/handlers"
	"recipehub/internal/middleware"
	"recipehub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	RecipeHandler    handlers.RecipeHandler
	AttributeHandler handlers.AttributeHandler
	SocialHandler    handlers.SocialHandler
	MessagingHandler handlers.MessagingHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Users()
	c.Recipes()
	c.Attributes()
	c.Conversations()
	c.GuestRoute()
}

func (c *Config) Users() {
	users := c.App.Group("/api/v1/users")
	{
		users.Post("/register", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		users.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		users.Get("/follows", c.Middleware.AuthMiddleware(c.JWTService), c.SocialHandler.GetFollows)
		users.Get("/:id/profile", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetProfile)
		users.Post("/:id/follow", c.Middleware.AuthMiddleware(c.JWTService), c.SocialHandler.Follow)
		users.Delete("/:id/follow", c.Middleware.AuthMiddleware(c.JWTService), c.SocialHandler.Unfollow)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Delete("/comments/:id", c.RecipeHandler.DeleteComment)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Patch("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)

	// Special operations
	recipes.Post("/:id/image", c.RecipeHandler.UploadRecipeImage)
	recipes.Post("/:id/like", c.RecipeHandler.LikeRecipe)
	recipes.Delete("/:id/like", c.RecipeHandler.UnlikeRecipe)
	recipes.Post("/:id/rate", c.RecipeHandler.RateRecipe)
	recipes.Post("/:id/comments", c.RecipeHandler.AddComment)
}

func (c *Config) Attributes() {
	tags := c.App.Group("/api/v1/tags", c.Middleware.AuthMiddleware(c.JWTService))
	tags.Get("", c.AttributeHandler.GetTags)
	tags.Patch("/:id", c.AttributeHandler.UpdateTag)
	tags.Delete("/:id", c.AttributeHandler.DeleteTag)

	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))
	ingredients.Get("", c.AttributeHandler.GetIngredients)
	ingredients.Patch("/:id", c.AttributeHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.AttributeHandler.DeleteIngredient)
}

func (c *Config) Conversations() {
	conversations := c.App.Group("/api/v1/conversations", c.Middleware.AuthMiddleware(c.JWTService))
	conversations.Post("", c.MessagingHandler.CreateConversation)
	conversations.Get("", c.MessagingHandler.GetConversations)
	conversations.Get("/:id/messages", c.MessagingHandler.GetMessages)
	conversations.Post("/:id/messages", c.MessagingHandler.SendMessage)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
