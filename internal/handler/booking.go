package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vmaslov/coworking-booking/internal/booking"
	"github.com/vmaslov/coworking-booking/internal/config"
	"github.com/vmaslov/coworking-booking/internal/model"
	"github.com/vmaslov/coworking-booking/internal/queue"
	"github.com/vmaslov/coworking-booking/internal/repository"
	queue_publisher "github.com/vmaslov/coworking-booking/internal/service"
)

// BookingHandler serves the customer booking lifecycle: create, list,
// inspect, reschedule and cancel.
type BookingHandler struct {
	Cfg           config.Config
	BookingRepo   *repository.BookingRepo
	WorkplaceRepo *repository.WorkplaceRepo
	Log           *zap.Logger
}

func NewBookingHandler(cfg config.Config, b *repository.BookingRepo, w *repository.WorkplaceRepo, log *zap.Logger) *BookingHandler {
	if b == nil || w == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Cfg: cfg, BookingRepo: b, WorkplaceRepo: w, Log: log}
}

// bookingReq accepts either explicit RFC3339 instants or a slot form
// (dates plus hours) interpreted in the display timezone.  Exactly one
// of the two forms must be provided.
type bookingReq struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Date      string `json:"date"`
	EndDate   string `json:"end_date"`
	StartHour *int   `json:"start_hour"`
	EndHour   *int   `json:"end_hour"`
}

// window resolves the request into a concrete [start, end) pair.
func (r *bookingReq) window(loc *time.Location) (start, end time.Time, err error) {
	if r.Date != "" || r.StartHour != nil || r.EndHour != nil {
		if r.Date == "" || r.StartHour == nil || r.EndHour == nil {
			return start, end, errBadWindow
		}
		start, err = booking.SlotTime(r.Date, *r.StartHour, loc)
		if err != nil {
			return start, end, errBadWindow
		}
		// A stay may run into another day; end_date defaults to date.
		endDate := r.Date
		if r.EndDate != "" {
			endDate = r.EndDate
		}
		// End hour 24 means "until midnight".
		if *r.EndHour == 24 {
			end, err = booking.SlotTime(endDate, 0, loc)
			if err == nil {
				end = end.AddDate(0, 0, 1)
			}
		} else {
			end, err = booking.SlotTime(endDate, *r.EndHour, loc)
		}
		if err != nil {
			return start, end, errBadWindow
		}
		return start, end, nil
	}
	if strings.TrimSpace(r.StartTime) == "" || strings.TrimSpace(r.EndTime) == "" {
		return start, end, errBadWindow
	}
	start, err = time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return start, end, errBadWindow
	}
	end, err = time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return start, end, errBadWindow
	}
	return start, end, nil
}

var errBadWindow = echo.NewHTTPError(http.StatusBadRequest, "invalid booking window")

type bookingResp struct {
	ID          uint64    `json:"id"`
	WorkplaceID uint64    `json:"workplace_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TotalPrice  string    `json:"total_price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:          b.ID,
		WorkplaceID: b.WorkplaceID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalPrice:  b.TotalPrice.StringFixed(2),
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

// Create books a workplace for a time window.  The workplace row is
// locked for the duration of the transaction so two concurrent requests
// for the same workplace serialize; the loser re-runs the overlap check
// against the winner's committed row and gets a 409.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	workplaceID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, end, err := req.window(h.Cfg.DisplayTimezone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking window"})
	}

	ctx := c.Request().Context()
	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	wp, err := h.WorkplaceRepo.LockTx(ctx, tx, workplaceID)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	b, err := booking.Quote(ctx, h.BookingRepo.TxSource(tx), wp, userID, start, end, time.Now().UTC(), 0)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.BookingRepo.CreateTx(ctx, tx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit"})
	}
	committed = true

	go h.publishConfirmed(b, wp)

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// Update reschedules an active booking.  The booking's own window is
// excluded from the overlap check so shrinking or shifting inside it
// never conflicts with itself.
func (h *BookingHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	existing, err := h.BookingRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if existing.Status != model.BookingStatusActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is cancelled"})
	}

	start, end, err := req.window(h.Cfg.DisplayTimezone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking window"})
	}

	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	wp, err := h.WorkplaceRepo.LockTx(ctx, tx, existing.WorkplaceID)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	quoted, err := booking.Quote(ctx, h.BookingRepo.TxSource(tx), wp, userID, start, end, time.Now().UTC(), existing.ID)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	existing.StartTime = quoted.StartTime
	existing.EndTime = quoted.EndTime
	existing.TotalPrice = quoted.TotalPrice
	if err := h.BookingRepo.UpdateWindowTx(ctx, tx, existing); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit"})
	}
	committed = true

	return c.JSON(http.StatusOK, toBookingResp(existing))
}

// List returns the caller's bookings, most recent start first.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]bookingResp, 0, len(items))
	for i := range items {
		out = append(out, toBookingResp(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get returns one booking owned by the caller.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.BookingRepo.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Cancel soft-deletes an active booking.  The row survives with status
// CANCELLED and immediately stops blocking the workplace.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.BookingRepo.Cancel(ctx, b.ID); err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel"})
	}

	go h.publishCancelled(b)

	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) publishConfirmed(b *model.Booking, wp *model.Workplace) {
	ev := queue.BookingConfirmedEvent{
		BookingID:     b.ID,
		UserID:        b.UserID,
		WorkplaceID:   b.WorkplaceID,
		WorkplaceName: wp.Name,
		CoworkingID:   wp.CoworkingID,
		StartsAt:      b.StartTime.Format(time.RFC3339),
		EndsAt:        b.EndTime.Format(time.RFC3339),
		TotalPrice:    b.TotalPrice.StringFixed(2),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := contextWithTimeout(5 * time.Second)
	defer cancel()
	if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil && h.Log != nil {
		h.Log.Warn("publish booking.confirmed failed", zap.Uint64("booking_id", b.ID), zap.Error(err))
	}
}

func (h *BookingHandler) publishCancelled(b *model.Booking) {
	ev := queue.BookingCancelledEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		WorkplaceID: b.WorkplaceID,
		StartsAt:    b.StartTime.Format(time.RFC3339),
		EndsAt:      b.EndTime.Format(time.RFC3339),
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := contextWithTimeout(5 * time.Second)
	defer cancel()
	if err := queue_publisher.PublishBookingCancelled(ctx, ev); err != nil && h.Log != nil {
		h.Log.Warn("publish booking.cancelled failed", zap.Uint64("booking_id", b.ID), zap.Error(err))
	}
}
