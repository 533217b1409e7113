package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vmaslov/coworking-booking/internal/model"
	"github.com/vmaslov/coworking-booking/internal/queue"
	"github.com/vmaslov/coworking-booking/internal/repository"
	queue_publisher "github.com/vmaslov/coworking-booking/internal/service"
)

// PaymentHandler records payments and serves PDF receipts.
type PaymentHandler struct {
	BookingRepo *repository.BookingRepo
	PaymentRepo *repository.PaymentRepo
	Log         *zap.Logger
}

type paymentReq struct {
	Method string `json:"method"`
}

type paymentResp struct {
	ID         uint64    `json:"id"`
	BookingID  uint64    `json:"booking_id"`
	Amount     string    `json:"amount"`
	Method     string    `json:"method"`
	PaymentRef string    `json:"payment_ref"`
	Status     string    `json:"status"`
	PaidAt     time.Time `json:"paid_at"`
}

func toPaymentResp(p *model.Payment) paymentResp {
	return paymentResp{
		ID:         p.ID,
		BookingID:  p.BookingID,
		Amount:     p.Amount.StringFixed(2),
		Method:     p.PaymentMethod,
		PaymentRef: p.PaymentRef,
		Status:     p.Status,
		PaidAt:     p.PaidAt,
	}
}

// Create records a payment for the caller's booking.  The amount always
// equals the booking's total price; clients never send an amount.  A
// second payment attempt answers 409.
func (h *PaymentHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = "card"
	}

	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if b.Status != model.BookingStatusActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is cancelled"})
	}

	p := &model.Payment{
		BookingID:     b.ID,
		Amount:        b.TotalPrice,
		PaymentMethod: method,
		PaymentRef:    uuid.NewString(),
		Status:        model.PaymentStatusPaid,
		PaidAt:        time.Now().UTC(),
	}
	if err := h.PaymentRepo.Create(ctx, p); err != nil {
		if err == repository.ErrAlreadyPaid {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already paid"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
	}

	go h.publishCompleted(p, b.UserID)

	return c.JSON(http.StatusCreated, toPaymentResp(p))
}

// Get returns the payment of the caller's booking.
func (h *PaymentHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	if _, err := h.BookingRepo.GetByIDForUser(ctx, id, userID); err != nil {
		if handled, resp := bookingErrJSON(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	p, err := h.PaymentRepo.GetByBooking(ctx, id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}

func (h *PaymentHandler) publishCompleted(p *model.Payment, userID uint64) {
	ev := queue.PaymentCompletedEvent{
		PaymentID:  p.ID,
		BookingID:  p.BookingID,
		UserID:     userID,
		Amount:     p.Amount.StringFixed(2),
		Method:     p.PaymentMethod,
		PaymentRef: p.PaymentRef,
		PaidAt:     p.PaidAt.Format(time.RFC3339),
	}
	ctx, cancel := contextWithTimeout(5 * time.Second)
	defer cancel()
	if err := queue_publisher.PublishPaymentCompleted(ctx, ev); err != nil && h.Log != nil {
		h.Log.Warn("publish payment.completed failed", zap.Uint64("payment_id", p.ID), zap.Error(err))
	}
}
