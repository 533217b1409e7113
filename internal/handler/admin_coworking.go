package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/model"
	"github.com/vmaslov/coworking-booking/internal/repository"
)

// AdminHandler bundles repositories for administrators managing the
// coworking inventory.
type AdminHandler struct {
	CoworkingRepo *repository.CoworkingRepo
	WorkplaceRepo *repository.WorkplaceRepo
	TypeRepo      *repository.WorkplaceTypeRepo
	BookingRepo   *repository.BookingRepo
	UserRepo      *repository.UserRepo
	PaymentRepo   *repository.PaymentRepo
}

func NewAdminHandler(cw *repository.CoworkingRepo, wp *repository.WorkplaceRepo, tp *repository.WorkplaceTypeRepo, bk *repository.BookingRepo, us *repository.UserRepo, pay *repository.PaymentRepo) *AdminHandler {
	if cw == nil || wp == nil || tp == nil || bk == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{CoworkingRepo: cw, WorkplaceRepo: wp, TypeRepo: tp, BookingRepo: bk, UserRepo: us, PaymentRepo: pay}
}

type coworkingReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// CreateCoworking registers a new coworking space.
func (h *AdminHandler) CreateCoworking(c echo.Context) error {
	var req coworkingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}

	cw := &model.Coworking{Name: req.Name, Address: req.Address, Description: req.Description}
	if err := h.CoworkingRepo.Create(c.Request().Context(), cw); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create coworking"})
	}
	return c.JSON(http.StatusCreated, cw)
}

// UpdateCoworking rewrites a coworking's fields.
func (h *AdminHandler) UpdateCoworking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req coworkingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}

	cw := &model.Coworking{ID: id, Name: req.Name, Address: req.Address, Description: req.Description}
	if err := h.CoworkingRepo.Update(c.Request().Context(), cw); err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update coworking"})
	}
	return c.JSON(http.StatusOK, cw)
}

// DeleteCoworking removes a coworking unless any of its workplaces has a
// future active booking.
func (h *AdminHandler) DeleteCoworking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	n, err := h.BookingRepo.CountFutureActiveByCoworking(ctx, id, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "coworking has future bookings"})
	}

	if err := h.CoworkingRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete coworking"})
	}
	return c.NoContent(http.StatusNoContent)
}

type imageReq struct {
	URL string `json:"url"`
}

// AddCoworkingImage attaches an image URL to a coworking.
func (h *AdminHandler) AddCoworkingImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req imageReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.CoworkingRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	img := &model.CoworkingImage{CoworkingID: id, URL: strings.TrimSpace(req.URL)}
	if err := h.CoworkingRepo.AddImage(ctx, img); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add image"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": img.ID, "url": img.URL})
}

// DeleteCoworkingImage removes one gallery image.
func (h *AdminHandler) DeleteCoworkingImage(c echo.Context) error {
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image id"})
	}
	if err := h.CoworkingRepo.DeleteImage(c.Request().Context(), imageID); err != nil {
		if err == repository.ErrImageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete image"})
	}
	return c.NoContent(http.StatusNoContent)
}
