package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stats reports object counts for the admin dashboard.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	coworkings, err := h.CoworkingRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	workplaces, err := h.WorkplaceRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	users, err := h.UserRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	payments, err := h.PaymentRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"coworkings": coworkings,
		"workplaces": workplaces,
		"users":      users,
		"payments":   payments,
	})
}
