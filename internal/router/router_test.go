package router

import (
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/config"
	"github.com/vmaslov/coworking-booking/internal/handler"
)

func routeSet(e *echo.Echo) map[string]bool {
	set := make(map[string]bool, len(e.Routes()))
	for _, r := range e.Routes() {
		set[r.Method+" "+r.Path] = true
	}
	return set
}

func TestPublicRoutesRegistered(t *testing.T) {
	e := echo.New()
	RegisterPublic(e, &handler.PublicHandler{}, &handler.AvailabilityHandler{}, config.CacheConfig{}, nil)

	got := routeSet(e)
	for _, route := range []string{
		"GET /v1/coworkings",
		"GET /v1/coworkings/:id",
		"GET /v1/coworkings/:id/workplaces",
		"GET /v1/coworkings/:id/reviews",
		"GET /v1/workplaces/:id",
		"GET /v1/workplaces/:id/availability",
		"GET /v1/workplace-types",
	} {
		if !got[route] {
			t.Errorf("route %s not registered", route)
		}
	}
}

func TestCustomerRoutesRegistered(t *testing.T) {
	e := echo.New()
	RegisterCustomer(e, &handler.BookingHandler{}, &handler.PaymentHandler{}, &handler.ReviewHandler{}, &handler.FavoriteHandler{}, "secret")

	got := routeSet(e)
	for _, route := range []string{
		"POST /v1/workplaces/:id/bookings",
		"GET /v1/my-bookings",
		"GET /v1/bookings/:id",
		"PUT /v1/bookings/:id",
		"PATCH /v1/bookings/:id",
		"DELETE /v1/bookings/:id",
		"POST /v1/bookings/:id/payment",
		"GET /v1/bookings/:id/payment",
		"GET /v1/bookings/:id/receipt",
		"POST /v1/coworkings/:id/reviews",
		"DELETE /v1/reviews/:id",
		"GET /v1/favorites",
		"POST /v1/workplaces/:id/favorite",
		"DELETE /v1/workplaces/:id/favorite",
	} {
		if !got[route] {
			t.Errorf("route %s not registered", route)
		}
	}
}
