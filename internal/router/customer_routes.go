package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/handler"
	"github.com/vmaslov/coworking-booking/internal/middleware"
)

func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, pay *handler.PaymentHandler, rv *handler.ReviewHandler, fav *handler.FavoriteHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)

	g.POST("/workplaces/:id/bookings", b.Create)
	g.GET("/my-bookings", b.List)
	g.GET("/bookings/:id", b.Get)
	g.PUT("/bookings/:id", b.Update)
	g.PATCH("/bookings/:id", b.Update)
	g.DELETE("/bookings/:id", b.Cancel)

	g.POST("/bookings/:id/payment", pay.Create)
	g.GET("/bookings/:id/payment", pay.Get)
	g.GET("/bookings/:id/receipt", pay.Receipt)

	g.POST("/coworkings/:id/reviews", rv.Create)
	g.DELETE("/reviews/:id", rv.Delete)

	g.GET("/favorites", fav.List)
	g.POST("/workplaces/:id/favorite", fav.Add)
	g.DELETE("/workplaces/:id/favorite", fav.Remove)
}
