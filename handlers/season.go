// handlers/season.go - Season rollover endpoint
package handlers

import (
	"liga/services"
	"liga/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var rollovers = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "liga",
	Name:      "season_rollovers_total",
	Help:      "Season rollovers by result.",
}, []string{"result"})

// StartSeason clones the previous season into :ano
// POST /api/iniciar-temporada/:ano
//
// Any failure is answered with a generic 500; the cause is only logged.
func StartSeason(c *fiber.Ctx) error {
	ctx := c.UserContext()
	year := c.Params("ano")

	var req services.RolloverRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("ano", year).Msg("❌ invalid rollover body")
			rollovers.WithLabelValues("error").Inc()
			return utils.JSONError(c, fiber.StatusInternalServerError, "Erro ao iniciar nova temporada")
		}
	}

	summary, err := seasonService.StartSeason(ctx, year, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("ano", year).Msg("❌ season rollover failed")
		rollovers.WithLabelValues("error").Inc()
		return utils.JSONError(c, fiber.StatusInternalServerError, "Erro ao iniciar nova temporada")
	}

	rollovers.WithLabelValues("ok").Inc()
	return c.JSON(fiber.Map{
		"message":        "Temporada " + summary.Temporada + " iniciada com sucesso",
		"temporada":      summary.Temporada,
		"times":          summary.Times,
		"jogadores":      summary.Jogadores,
		"vinculos":       summary.Vinculos,
		"descartados":    summary.Descartados,
		"transferencias": summary.Transferencias,
	})
}
