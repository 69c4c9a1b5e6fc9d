// handlers/players.go - Player HTTP Handlers
package handlers

import (
	"liga/services"
	"liga/utils"

	"github.com/gofiber/fiber/v2"
)

// GetPlayers lists players with their season links
// GET /api/jogadores?temporada=2025
func GetPlayers(c *fiber.Ctx) error {
	players, err := playerService.ListPlayers(c.UserContext(), c.Query("temporada"))
	if err != nil {
		return respondError(c, err, "Erro ao buscar os jogadores")
	}
	return c.JSON(players)
}

// GET /api/jogadores/:id
func GetPlayer(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}
	player, err := playerService.GetPlayer(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Erro ao buscar o jogador")
	}
	return c.JSON(player)
}

// CreatePlayer adds a player to an existing team
// POST /api/jogador
func CreatePlayer(c *fiber.Ctx) error {
	var req services.PlayerInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	link, err := playerService.CreatePlayer(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Erro ao criar o jogador")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"jogador": link})
}

// UpdatePlayer updates a player and, with stats, its season link
// PUT /api/jogador/:id
func UpdatePlayer(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}

	var req services.PlayerUpdate
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	player, err := playerService.UpdatePlayer(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "Erro ao atualizar o jogador")
	}
	return c.JSON(player)
}
