// handlers/plans.go - Plan-gated team listings
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// PlanTeams lists teams for a plan-gated route, with or without rosters.
func PlanTeams(withPlayers bool, failure string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teams, err := teamService.ListTeams(c.UserContext(), c.Query("temporada"), withPlayers)
		if err != nil {
			return respondError(c, err, failure)
		}
		return c.JSON(teams)
	}
}
