package controller

import (
	"errors"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, chess.ErrInvalidMove),
		errors.Is(err, service.ErrGameOver):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrAlreadyTaken),
		errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every error as {"message": "Error: ..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(fiber.Map{
		"message": "Error: " + err.Error(),
	})
}
