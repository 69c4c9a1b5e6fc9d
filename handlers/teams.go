// handlers/teams.go - Team HTTP Handlers
package handlers

import (
	"liga/services"
	"liga/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// GetTeams lists teams with their rosters
// GET /api/times?temporada=2025
func GetTeams(c *fiber.Ctx) error {
	teams, err := teamService.ListTeams(c.UserContext(), c.Query("temporada"), true)
	if err != nil {
		return respondError(c, err, "Erro ao buscar os times")
	}
	return c.JSON(teams)
}

// GetTeam returns one team with its roster
// GET /api/times/:id
func GetTeam(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}
	team, err := teamService.GetTeam(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Erro ao buscar o time")
	}
	return c.JSON(team)
}

// CreateTeam creates a team and, optionally, its players
// POST /api/time
func CreateTeam(c *fiber.Ctx) error {
	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	team, err := teamService.CreateTeam(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Erro ao criar time e jogadores")
	}

	players := "Nenhum jogador adicionado"
	if len(req.Jogadores) > 0 {
		players = "Jogadores criados"
	}

	log.Ctx(c.UserContext()).Info().Uint("time_id", team.ID).Str("nome", team.Nome).Msg("✅ team created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"team":    team,
		"players": players,
	})
}

// CreateTeams creates several teams with their players in one transaction
// POST /api/times
func CreateTeams(c *fiber.Ctx) error {
	var req []services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if len(req) == 0 {
		return utils.JSONError(c, fiber.StatusBadRequest, "Nenhum time enviado")
	}

	teams, err := teamService.CreateTeams(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Erro ao criar múltiplos times e jogadores")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"teams": teams})
}

// UpdateTeam updates a team's fields
// PUT /api/time/:id
func UpdateTeam(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}

	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	team, err := teamService.UpdateTeam(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "Erro ao atualizar o time")
	}
	return c.JSON(team)
}

// DeleteTeam removes a team and its links
// DELETE /api/time/:id
func DeleteTeam(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}
	if err := teamService.DeleteTeam(c.UserContext(), id); err != nil {
		return respondError(c, err, "Erro ao remover o time")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportData imports the seed file
// POST /api/importar-dados
func ImportData(c *fiber.Ctx) error {
	teams, err := seedService.ImportFile(c.UserContext(), seedFile)
	if err != nil {
		return respondError(c, err, "Erro ao importar os dados")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Dados importados com sucesso!",
		"teams":   teams,
	})
}
