package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/phpdave11/gofpdf"

	"github.com/vmaslov/coworking-booking/internal/model"
	"github.com/vmaslov/coworking-booking/internal/repository"
)

// Receipt renders the paid booking's receipt as a PDF download.
func (h *PaymentHandler) Receipt(c echo.Context) error {
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
	p, err := h.PaymentRepo.GetByBooking(ctx, id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	data, filename, err := buildReceiptPDF(b, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render receipt"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func buildReceiptPDF(b *model.Booking, p *model.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Reference : "+p.PaymentRef)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Paid at   : "+p.PaidAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Booking details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Booking #%d, workplace #%d", b.ID, b.WorkplaceID))
	pdf.Ln(6)
	pdf.Cell(0, 6, "From : "+b.StartTime.Format(time.RFC3339))
	pdf.Ln(6)
	pdf.Cell(0, 6, "To   : "+b.EndTime.Format(time.RFC3339))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Paid via "+p.PaymentMethod)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+p.Amount.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}
