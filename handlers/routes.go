// handlers/routes.go - API route table
package handlers

import (
	"time"

	"liga/middleware"
	"liga/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteConfig carries the middleware shared by the route table.
type RouteConfig struct {
	Auth        *middleware.Auth
	AuthLimiter *middleware.RateLimiter
	Version     string
}

// SetupRoutes registers /health, /metrics and the /api routes on app.
func SetupRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   cfg.Version,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", cfg.Auth.Optional())
	admin := middleware.RequireAdmin

	// Auth routes with stricter rate limiting
	authLimit := middleware.RateLimit(cfg.AuthLimiter, "Muitas tentativas de autenticação. Tente novamente em alguns minutos.")
	api.Post("/cadastro", authLimit, Register)
	api.Post("/login", authLimit, Login)
	api.Get("/test", middleware.RequireUser, Welcome)

	// Teams
	api.Get("/times", GetTeams)
	api.Get("/times/:id", GetTeam)
	api.Post("/time", admin, CreateTeam)
	api.Post("/times", admin, CreateTeams)
	api.Put("/time/:id", admin, UpdateTeam)
	api.Delete("/time/:id", admin, DeleteTeam)
	api.Post("/importar-dados", admin, ImportData)

	// Players
	api.Get("/jogadores", GetPlayers)
	api.Get("/jogadores/:id", GetPlayer)
	api.Post("/jogador", admin, CreatePlayer)
	api.Put("/jogador/:id", admin, UpdatePlayer)

	// Season rollover
	api.Post("/iniciar-temporada/:ano", admin, StartSeason)

	// Articles
	api.Get("/materias", GetArticles)
	api.Get("/materias/:id", GetArticle)
	api.Post("/materias", admin, CreateArticle)
	api.Put("/materias/:id", admin, UpdateArticle)
	api.Delete("/materias/:id", admin, DeleteArticle)

	// Plan-gated listings
	api.Get("/times-basico", middleware.RequirePlan(models.PlanBasico), PlanTeams(true, "Erro ao buscar times básico"))
	api.Get("/times-padrao", middleware.RequirePlan(models.PlanPadrao), PlanTeams(false, "Erro ao buscar times padrão"))
	api.Get("/times-premium", middleware.RequirePlan(models.PlanPremium), PlanTeams(true, "Erro ao buscar times premium"))
}
