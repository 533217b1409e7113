package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vmaslov/coworking-booking/internal/model"
	"github.com/vmaslov/coworking-booking/internal/repository"
)

type workplaceReq struct {
	CoworkingID  uint64 `json:"coworking_id"`
	TypeID       uint64 `json:"type_id"`
	Name         string `json:"name"`
	PricePerHour string `json:"price_per_hour"`
	IsActive     *bool  `json:"is_active"`
}

func (r *workplaceReq) price() (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(r.PricePerHour))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if p.IsNegative() {
		return decimal.Decimal{}, errNegativePrice
	}
	return p, nil
}

var errNegativePrice = echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")

// CreateWorkplace adds a bookable unit to a coworking.
func (h *AdminHandler) CreateWorkplace(c echo.Context) error {
	var req workplaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.CoworkingID == 0 || req.TypeID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "coworking_id, type_id and name are required"})
	}
	price, err := req.price()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price_per_hour"})
	}

	ctx := c.Request().Context()
	if _, err := h.CoworkingRepo.GetByID(ctx, req.CoworkingID); err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.TypeRepo.GetByID(ctx, req.TypeID); err != nil {
		if err == repository.ErrWorkplaceTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	w := &model.Workplace{
		CoworkingID:     req.CoworkingID,
		WorkplaceTypeID: req.TypeID,
		Name:            req.Name,
		PricePerHour:    price,
		IsActive:        active,
	}
	if err := h.WorkplaceRepo.Create(ctx, w); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create workplace"})
	}
	return c.JSON(http.StatusCreated, w)
}

// ListWorkplaces returns all workplaces of a coworking, inactive ones
// included.
func (h *AdminHandler) ListWorkplaces(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	items, err := h.WorkplaceRepo.ListByCoworking(c.Request().Context(), id, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateWorkplace rewrites a workplace.  A price change never touches
// existing bookings; their total was fixed at booking time.
func (h *AdminHandler) UpdateWorkplace(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req workplaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	w, err := h.WorkplaceRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrWorkplaceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		w.Name = name
	}
	if req.TypeID != 0 {
		if _, err := h.TypeRepo.GetByID(ctx, req.TypeID); err != nil {
			if err == repository.ErrWorkplaceTypeNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace type not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		w.WorkplaceTypeID = req.TypeID
	}
	if strings.TrimSpace(req.PricePerHour) != "" {
		price, err := req.price()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price_per_hour"})
		}
		w.PricePerHour = price
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}

	if err := h.WorkplaceRepo.Update(ctx, w); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update workplace"})
	}
	return c.JSON(http.StatusOK, w)
}

// DeactivateWorkplace stops new bookings without touching existing ones.
func (h *AdminHandler) DeactivateWorkplace(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.WorkplaceRepo.Deactivate(c.Request().Context(), id); err != nil {
		if err == repository.ErrWorkplaceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to deactivate"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteWorkplace removes a workplace unless it still has future active
// bookings; deactivation is the way to retire a unit gracefully.
func (h *AdminHandler) DeleteWorkplace(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	n, err := h.BookingRepo.CountFutureActiveByWorkplace(ctx, id, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "workplace has future bookings"})
	}

	if err := h.WorkplaceRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrWorkplaceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete workplace"})
	}
	return c.NoContent(http.StatusNoContent)
}

// AddWorkplaceImage attaches an image URL to a workplace.
func (h *AdminHandler) AddWorkplaceImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req imageReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.WorkplaceRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrWorkplaceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	img := &model.WorkplaceImage{WorkplaceID: id, URL: strings.TrimSpace(req.URL)}
	if err := h.WorkplaceRepo.AddImage(ctx, img); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add image"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": img.ID, "url": img.URL})
}

// DeleteWorkplaceImage removes one gallery image.
func (h *AdminHandler) DeleteWorkplaceImage(c echo.Context) error {
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image id"})
	}
	if err := h.WorkplaceRepo.DeleteImage(c.Request().Context(), imageID); err != nil {
		if err == repository.ErrImageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete image"})
	}
	return c.NoContent(http.StatusNoContent)
}
