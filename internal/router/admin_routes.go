package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/handler"
	"github.com/vmaslov/coworking-booking/internal/middleware"
)

func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	g.POST("/coworkings", a.CreateCoworking)
	g.PUT("/coworkings/:id", a.UpdateCoworking)
	g.PATCH("/coworkings/:id", a.UpdateCoworking)
	g.DELETE("/coworkings/:id", a.DeleteCoworking)
	g.POST("/coworkings/:id/images", a.AddCoworkingImage)
	g.DELETE("/coworkings/:id/images/:image_id", a.DeleteCoworkingImage)

	g.POST("/workplaces", a.CreateWorkplace)
	g.GET("/coworkings/:id/workplaces", a.ListWorkplaces)
	g.PUT("/workplaces/:id", a.UpdateWorkplace)
	g.PATCH("/workplaces/:id", a.UpdateWorkplace)
	g.POST("/workplaces/:id/deactivate", a.DeactivateWorkplace)
	g.DELETE("/workplaces/:id", a.DeleteWorkplace)
	g.POST("/workplaces/:id/images", a.AddWorkplaceImage)
	g.DELETE("/workplaces/:id/images/:image_id", a.DeleteWorkplaceImage)

	g.POST("/workplace-types", a.CreateWorkplaceType)
	g.PUT("/workplace-types/:id", a.UpdateWorkplaceType)
	g.DELETE("/workplace-types/:id", a.DeleteWorkplaceType)

	g.GET("/stats", a.Stats)
}
