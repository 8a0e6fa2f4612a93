package handler

import (
	"employee-directory/internal/config"
	"employee-directory/internal/logging"
	"employee-directory/internal/middleware"
	"employee-directory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Services struct {
	Auth      *service.AuthService
	Employees *service.EmployeeService
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(cfg *config.Config, svc Services, log logging.Logger) *fiber.App {
	bodyLimit := cfg.Server.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 16
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Server.AppName,
		BodyLimit:    bodyLimit * 1024 * 1024,
		ErrorHandler: ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORSOrigins}))

	RegisterRoutes(app, cfg, svc, log)
	return app
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, svc Services, log logging.Logger) {
	authHandler := NewAuthHandler(svc.Auth, cfg.Server.IsProduction(), log)
	employeeHandler := NewEmployeeHandler(svc.Employees, log)
	guard := middleware.Auth(cfg.JWT.Secret)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.HandleSignup)
	auth.Post("/login", authHandler.HandleLogin)

	api.Get("/user", guard, authHandler.HandleMe)

	employees := api.Group("/employees", guard)
	employees.Get("/", employeeHandler.HandleList)
	// Registered before /:id so "recent" never reaches the id lookup.
	employees.Get("/recent", employeeHandler.HandleRecent)
	employees.Get("/:id", employeeHandler.HandleGet)
	employees.Post("/", employeeHandler.HandleCreate)
	employees.Put("/:id", employeeHandler.HandleUpdate)
	employees.Delete("/:id", employeeHandler.HandleDelete)
}
