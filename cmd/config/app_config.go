package config

import (
	"os"
	"time"

	"recipehub/internal/api/handlers"
	"recipehub/internal/api/routes"
	"recipehub/internal/middleware"
	"recipehub/internal/utils"
	"recipehub/internal/utils/storage"
	"recipehub/pkg/attribute"
	"recipehub/pkg/jwt"
	"recipehub/pkg/messaging"
	"recipehub/pkg/recipe"
	"recipehub/pkg/social"
	"recipehub/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	attributeRepository := attribute.NewAttributeRepository(db)
	followRepository := social.NewFollowRepository(db)
	messagingRepository := messaging.NewMessagingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, attributeRepository, s3)
	attributeService := attribute.NewAttributeService(attributeRepository)
	socialService := social.NewSocialService(followRepository, userRepository)
	messagingService := messaging.NewMessagingService(messagingRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	attributeHandler := handlers.NewAttributeHandler(attributeService, validator)
	socialHandler := handlers.NewSocialHandler(socialService)
	messagingHandler := handlers.NewMessagingHandler(messagingService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		RecipeHandler:    recipeHandler,
		AttributeHandler: attributeHandler,
		SocialHandler:    socialHandler,
		MessagingHandler: messagingHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
