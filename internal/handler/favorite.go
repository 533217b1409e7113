package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/repository"
)

// FavoriteHandler serves per-user workplace bookmarks.
type FavoriteHandler struct {
	FavoriteRepo  *repository.FavoriteRepo
	WorkplaceRepo *repository.WorkplaceRepo
}

// Add bookmarks a workplace.  Adding twice is idempotent.
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	workplaceID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	if _, err := h.WorkplaceRepo.GetByID(ctx, workplaceID); err != nil {
		if err == repository.ErrWorkplaceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.FavoriteRepo.Add(ctx, userID, workplaceID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add favorite"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove deletes a bookmark.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	workplaceID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.FavoriteRepo.Remove(c.Request().Context(), userID, workplaceID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove favorite"})
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the caller's bookmarked workplaces.
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.FavoriteRepo.ListWorkplaces(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicWorkplace, 0, len(items))
	for _, w := range items {
		out = append(out, publicWorkplace{
			ID:           w.ID,
			CoworkingID:  w.CoworkingID,
			TypeID:       w.WorkplaceTypeID,
			Name:         w.Name,
			PricePerHour: w.PricePerHour,
			IsActive:     w.IsActive,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
