package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petmatch-service/internal/api/http/handlers"
	"github.com/spec-kit/petmatch-service/internal/auth"
	"github.com/spec-kit/petmatch-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Users          *handlers.UsersHandler
	Pets           *handlers.PetsHandler
	Adoptions      *handlers.AdoptionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Pet browsing and per-pet request listings
// stay public; everything that writes requires a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	ops := app.Group("/ops", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	ops.Get("/metrics", cfg.Metrics.Counters)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Users.Register)
	authGroup.Post("/users/login", cfg.Users.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	users.Get("/me", cfg.Users.Me)
	users.Get("/me/pets", cfg.Users.MyPets)

	pets := app.Group("/pets")
	pets.Get("/", cfg.Pets.List)
	pets.Get("/:id", cfg.Pets.Get)
	petsProtected := pets.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	petsProtected.Post("/", cfg.Pets.Create)
	petsProtected.Put("/:id", cfg.Pets.Update)
	petsProtected.Delete("/:id", cfg.Pets.Delete)

	adoptions := app.Group("/adoptions")
	adoptions.Get("/pet/:petId", cfg.Adoptions.ListByPet)
	adoptionsProtected := adoptions.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	adoptionsProtected.Post("/", cfg.Adoptions.Create)
	adoptionsProtected.Get("/mine", cfg.Adoptions.ListMine)
	adoptionsProtected.Get("/received", cfg.Adoptions.ListReceived)
	adoptionsProtected.Put("/:id/status", cfg.Adoptions.UpdateStatus)
	adoptionsProtected.Put("/:id/approve", cfg.Adoptions.Approve)
	adoptionsProtected.Delete("/:id", cfg.Adoptions.Delete)
}
