// Public browse endpoints.  Everything here is reachable without a
// token; responses carry only customer-facing fields.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vmaslov/coworking-booking/internal/repository"
)

// PublicHandler bundles repositories for unauthenticated browsing.
type PublicHandler struct {
	CoworkingRepo *repository.CoworkingRepo
	WorkplaceRepo *repository.WorkplaceRepo
	TypeRepo      *repository.WorkplaceTypeRepo
	ReviewRepo    *repository.ReviewRepo
}

type publicCoworking struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

type publicWorkplace struct {
	ID           uint64          `json:"id"`
	CoworkingID  uint64          `json:"coworking_id"`
	TypeID       uint64          `json:"type_id"`
	Name         string          `json:"name"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	IsActive     bool            `json:"is_active"`
	Images       []string        `json:"images,omitempty"`
}

type publicReview struct {
	ID        uint64    `json:"id"`
	Rating    uint8     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCoworkings serves the paginated coworking catalog with an optional
// free-text filter over name, address and description.
func (h *PublicHandler) ListCoworkings(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	ps, _ := strconv.Atoi(c.QueryParam("page_size"))
	if ps < 1 {
		ps = 5
	}
	if ps > 50 {
		ps = 50
	}

	items, total, err := h.CoworkingRepo.Search(c.Request().Context(), q, page, ps)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]publicCoworking, 0, len(items))
	for _, cw := range items {
		out = append(out, publicCoworking{
			ID:          cw.ID,
			Name:        cw.Name,
			Address:     cw.Address,
			Description: cw.Description,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      out,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}

// GetCoworking returns one coworking with images, its workplaces and
// review summary.
func (h *PublicHandler) GetCoworking(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	cw, err := h.CoworkingRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	imgs, err := h.CoworkingRepo.ListImages(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	urls := make([]string, 0, len(imgs))
	for _, img := range imgs {
		urls = append(urls, img.URL)
	}

	// Only active workplaces are shown to the public.
	wps, err := h.WorkplaceRepo.ListByCoworking(ctx, id, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	wpOut := make([]publicWorkplace, 0, len(wps))
	for _, w := range wps {
		wpOut = append(wpOut, publicWorkplace{
			ID:           w.ID,
			CoworkingID:  w.CoworkingID,
			TypeID:       w.WorkplaceTypeID,
			Name:         w.Name,
			PricePerHour: w.PricePerHour,
			IsActive:     w.IsActive,
		})
	}

	avg, count, err := h.ReviewRepo.AverageRating(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"coworking": publicCoworking{
			ID:          cw.ID,
			Name:        cw.Name,
			Address:     cw.Address,
			Description: cw.Description,
			Images:      urls,
		},
		"workplaces":   wpOut,
		"rating":       avg,
		"review_count": count,
	})
}

// ListCoworkingWorkplaces returns the workplaces of a coworking.  All
// workplaces are listed by default; active=true narrows the result to
// ones accepting new bookings.
func (h *PublicHandler) ListCoworkingWorkplaces(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.CoworkingRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	activeOnly := false
	switch strings.ToLower(c.QueryParam("active")) {
	case "1", "true", "yes":
		activeOnly = true
	}

	wps, err := h.WorkplaceRepo.ListByCoworking(ctx, id, activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicWorkplace, 0, len(wps))
	for _, w := range wps {
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

// ListCoworkingReviews returns the reviews of a coworking, newest first.
func (h *PublicHandler) ListCoworkingReviews(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.CoworkingRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrCoworkingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coworking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.ReviewRepo.ListByCoworking(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicReview, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, publicReview{ID: rv.ID, Rating: rv.Rating, Comment: rv.Comment, CreatedAt: rv.CreatedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetWorkplace returns one workplace with its image gallery.  Inactive
// workplaces stay visible so existing bookings keep a detail page; the
// is_active flag tells clients not to offer new bookings.
func (h *PublicHandler) GetWorkplace(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	w, err := h.WorkplaceRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrWorkplaceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	imgs, err := h.WorkplaceRepo.ListImages(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	urls := make([]string, 0, len(imgs))
	for _, img := range imgs {
		urls = append(urls, img.URL)
	}
	return c.JSON(http.StatusOK, publicWorkplace{
		ID:           w.ID,
		CoworkingID:  w.CoworkingID,
		TypeID:       w.WorkplaceTypeID,
		Name:         w.Name,
		PricePerHour: w.PricePerHour,
		IsActive:     w.IsActive,
		Images:       urls,
	})
}

// ListWorkplaceTypes serves the type dictionary.
func (h *PublicHandler) ListWorkplaceTypes(c echo.Context) error {
	types, err := h.TypeRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": types})
}
