// handlers/handlers.go - Shared handler state and error mapping
package handlers

import (
	"errors"

	"liga/services"
	"liga/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var (
	teamService    *services.TeamService
	playerService  *services.PlayerService
	articleService *services.ArticleService
	seasonService  *services.SeasonService
	authService    *services.AuthService
	seedService    *services.SeedService

	seedFile string
)

// Deps carries the services the handlers call.
type Deps struct {
	Teams    *services.TeamService
	Players  *services.PlayerService
	Articles *services.ArticleService
	Seasons  *services.SeasonService
	Auth     *services.AuthService
	Seed     *services.SeedService
	SeedFile string
}

// Init wires the handler package. It must run before SetupRoutes serves traffic.
func Init(d Deps) {
	if d.Teams == nil || d.Players == nil || d.Articles == nil || d.Seasons == nil || d.Auth == nil || d.Seed == nil {
		panic("handlers.Init: missing service")
	}
	teamService = d.Teams
	playerService = d.Players
	articleService = d.Articles
	seasonService = d.Seasons
	authService = d.Auth
	seedService = d.Seed
	seedFile = d.SeedFile
}

// respondError maps a service error to a status code. Store failures are
// logged and answered with fallback.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *services.ValidationError
	var nf *services.NotFoundError
	var fe *fiber.Error

	switch {
	case errors.As(err, &verr):
		return utils.JSONError(c, fiber.StatusBadRequest, verr.Error())
	case errors.As(err, &nf):
		return utils.JSONError(c, fiber.StatusNotFound, nf.Error())
	case errors.As(err, &fe):
		return utils.JSONError(c, fe.Code, fe.Message)
	}

	log.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg(fallback)
	return utils.JSONError(c, fiber.StatusInternalServerError, fallback)
}

// ErrorHandler renders errors that escape the handlers. In production the
// text of 500s is hidden.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		} else {
			log.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}

		if production && code == fiber.StatusInternalServerError {
			message = "Ocorreu um erro. Tente novamente mais tarde."
		}

		return utils.JSONError(c, code, message)
	}
}
