package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/model"
	"github.com/vmaslov/coworking-booking/internal/repository"
)

type workplaceTypeReq struct {
	Name string `json:"name"`
}

// CreateWorkplaceType adds an entry to the type dictionary.
func (h *AdminHandler) CreateWorkplaceType(c echo.Context) error {
	var req workplaceTypeReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	t := &model.WorkplaceType{Name: strings.TrimSpace(req.Name)}
	if err := h.TypeRepo.Create(c.Request().Context(), t); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create type"})
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateWorkplaceType renames a type.
func (h *AdminHandler) UpdateWorkplaceType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req workplaceTypeReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	t := &model.WorkplaceType{ID: id, Name: strings.TrimSpace(req.Name)}
	if err := h.TypeRepo.Update(c.Request().Context(), t); err != nil {
		switch err {
		case repository.ErrWorkplaceTypeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "type not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update type"})
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteWorkplaceType removes a type that no workplace references.
func (h *AdminHandler) DeleteWorkplaceType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.TypeRepo.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrWorkplaceTypeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "type not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "type is in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete type"})
	}
	return c.NoContent(http.StatusNoContent)
}
