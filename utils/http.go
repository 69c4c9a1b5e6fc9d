// utils/http.go - HTTP utility functions for Fiber handlers
package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// JSONError sends a JSON error response
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// ParamID parses a positive numeric route parameter
func ParamID(c *fiber.Ctx, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(key), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID inválido")
	}
	return uint(id), nil
}

// QueryInt gets an integer query parameter, falling back to def
func QueryInt(c *fiber.Ctx, key string, def int) int {
	val := c.Query(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}
