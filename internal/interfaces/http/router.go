package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelfmind/shelfmind-api/internal/application/auth"
	"github.com/shelfmind/shelfmind-api/internal/application/usecase"
	"github.com/shelfmind/shelfmind-api/internal/domain/entity"
	"github.com/shelfmind/shelfmind-api/internal/domain/repository"
	pkgjwt "github.com/shelfmind/shelfmind-api/pkg/jwt"
	"github.com/shelfmind/shelfmind-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	UserUC   *usecase.UserUseCase
	Codec    *pkgjwt.Codec
	UserRepo repository.UserRepository
	Log      *logger.Logger
	AppName  string
	Version  string
}

// Router registra las rutas de la API, incluidas la raíz informativa y el
// health check.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ShelfMind API is running",
			"version": deps.Version,
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	requireAuth := AuthMiddleware(deps.Codec, deps.UserRepo, deps.Log)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/roles", authHandler.Roles)
	authGroup.Get("/validate", requireAuth, authHandler.Validate)

	// Administración de usuarios (solo managers)
	users := api.Group("/users", requireAuth, RequireRole(entity.RoleManager))
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Delete("/:id", userHandler.Delete)
}
