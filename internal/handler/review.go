package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/model"
	"github.com/vmaslov/coworking-booking/internal/repository"
)

// ReviewHandler serves authenticated review writes.  Reads are public
// and live on PublicHandler.
type ReviewHandler struct {
	ReviewRepo *repository.ReviewRepo
}

type reviewReq struct {
	Rating  uint8  `json:"rating"`
	Comment string `json:"comment"`
}

// Create attaches a review to a coworking.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	coworkingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	rv := &model.Review{
		UserID:      userID,
		CoworkingID: coworkingID,
		Rating:      req.Rating,
		Comment:     strings.TrimSpace(req.Comment),
	}
	if err := h.ReviewRepo.Create(c.Request().Context(), rv); err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": rv.ID})
}

// Delete removes the caller's own review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ReviewRepo.Delete(c.Request().Context(), reviewID, userID); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.NoContent(http.StatusNoContent)
}
