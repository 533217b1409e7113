// Package router wires HTTP routes to handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/vmaslov/coworking-booking/internal/config"
	"github.com/vmaslov/coworking-booking/internal/handler"
	"github.com/vmaslov/coworking-booking/internal/middleware"
)

// RegisterRoutes registers unauthenticated infrastructure routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the browse endpoints.  Catalog reads go
// through the Redis response cache; the availability grid does not,
// stale busy hours would show phantom conflicts.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, av *handler.AvailabilityHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := e.Group("/v1", middleware.NewRedisCache(cacheCfg, rdb))
	cached.GET("/coworkings", p.ListCoworkings)
	cached.GET("/coworkings/:id", p.GetCoworking)
	cached.GET("/coworkings/:id/workplaces", p.ListCoworkingWorkplaces)
	cached.GET("/coworkings/:id/reviews", p.ListCoworkingReviews)
	cached.GET("/workplaces/:id", p.GetWorkplace)
	cached.GET("/workplace-types", p.ListWorkplaceTypes)

	e.GET("/v1/workplaces/:id/availability", av.Get)
}
