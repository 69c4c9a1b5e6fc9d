// handlers/articles.go - News article HTTP Handlers
package handlers

import (
	"liga/services"
	"liga/utils"

	"github.com/gofiber/fiber/v2"
)

// GET /api/materias?limit=10
func GetArticles(c *fiber.Ctx) error {
	articles, err := articleService.ListArticles(c.UserContext(), utils.QueryInt(c, "limit", 0))
	if err != nil {
		return respondError(c, err, "Erro ao buscar as matérias")
	}
	return c.JSON(articles)
}

// GET /api/materias/:id
func GetArticle(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}
	article, err := articleService.GetArticle(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Erro ao buscar a matéria")
	}
	return c.JSON(article)
}

// POST /api/materias
func CreateArticle(c *fiber.Ctx) error {
	var req services.ArticleInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	article, err := articleService.CreateArticle(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Erro ao criar a matéria")
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// PUT /api/materias/:id
func UpdateArticle(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}
	var req services.ArticleInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	article, err := articleService.UpdateArticle(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "Erro ao atualizar a matéria")
	}
	return c.JSON(article)
}

// DELETE /api/materias/:id
func DeleteArticle(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err, "ID inválido")
	}
	if err := articleService.DeleteArticle(c.UserContext(), id); err != nil {
		return respondError(c, err, "Erro ao remover a matéria")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
