// handlers/auth.go - Registration and login
package handlers

import (
	"errors"

	"liga/middleware"
	"liga/services"
	"liga/utils"

	"github.com/gofiber/fiber/v2"
)

// Register creates a user account
// POST /api/cadastro
func Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	user, err := authService.Register(c.UserContext(), req)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return utils.JSONError(c, fiber.StatusBadRequest, "Email já cadastrado")
	case err != nil:
		return respondError(c, err, "Erro ao cadastrar usuário")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Usuário cadastrado com sucesso",
		"usuario": user,
	})
}

// Login authenticates a user and returns an access token
// POST /api/login
func Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	token, _, err := authService.Login(c.UserContext(), req)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, "Usuário não encontrado")
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.JSONError(c, fiber.StatusUnauthorized, "Senha inválida")
	case err != nil:
		return respondError(c, err, "Erro ao fazer login")
	}

	return c.JSON(fiber.Map{"token": token})
}

// Welcome greets the authenticated user by plan
// GET /api/test
func Welcome(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Usuário não autenticado")
	}
	return c.JSON(fiber.Map{"message": "Bem-vindo, " + string(user.Plano) + "!"})
}
