package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lagunartea/club-ledger/internal/config"
	"github.com/lagunartea/club-ledger/internal/handler"
	"github.com/lagunartea/club-ledger/internal/middleware"
)

// Deps carries everything the routes need.  Redis may be nil, in which case
// rate limiting and response caching are skipped.
type Deps struct {
	Booking   *handler.BookingHandler
	Ledger    *handler.LedgerHandler
	Catalog   *handler.CatalogHandler
	Admin     *handler.AdminAuthHandler
	JWTSecret string
	StoreName string
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	LoginRate config.RateLimitConfig
	Cache     config.CacheConfig
	Log       *zap.Logger
}

// RegisterRoutes registers the health check, which sits outside rate
// limiting and caching.
func RegisterRoutes(e *echo.Echo, storeName string) {
	e.GET("/healthz", handler.Health(storeName))
}

// RegisterPublic registers the member-facing endpoints under /v1.  Reads
// are cached; every successful write invalidates the cache.
func RegisterPublic(e *echo.Echo, d Deps) {
	g := e.Group("/v1",
		middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log),
		middleware.InvalidateOnWrite(d.Cache, d.Redis),
	)
	cache := middleware.NewRedisCache(d.Cache, d.Redis)

	g.GET("/calendar", d.Booking.Calendar, cache)
	g.GET("/days/:date/reservations", d.Booking.DayReservations, cache)
	g.POST("/reservations", d.Booking.CreateReservation)

	g.GET("/items", d.Catalog.ListItems, cache)
	g.GET("/members", d.Catalog.ListMembers, cache)

	g.POST("/charges/checkout", d.Ledger.Checkout)
	g.GET("/charges/recent", d.Ledger.RecentCharges, cache)
	g.GET("/statements", d.Ledger.Statement, cache)
}

// RegisterAdmin registers the login endpoint and the ADMIN-only routes.
func RegisterAdmin(e *echo.Echo, d Deps) {
	e.POST("/v1/admin/login", d.Admin.Login, middleware.NewTokenBucket(d.LoginRate, d.Redis, d.Log))

	auth := []echo.MiddlewareFunc{
		middleware.JWTAuth(d.JWTSecret),
		middleware.RequireRole(middleware.RoleAdmin),
		middleware.InvalidateOnWrite(d.Cache, d.Redis),
	}
	e.DELETE("/v1/reservations/:id", d.Booking.DeleteReservation, auth...)
	e.DELETE("/v1/charges/:id", d.Ledger.DeleteCharge, auth...)

	a := e.Group("/v1/admin", auth...)
	a.POST("/members", d.Catalog.CreateMember)
	a.PUT("/members/:id", d.Catalog.UpdateMember)
	a.DELETE("/members/:id", d.Catalog.DeleteMember)
	a.POST("/items", d.Catalog.CreateItem)
	a.PUT("/items/:id", d.Catalog.UpdateItem)
	a.DELETE("/items/:id", d.Catalog.DeleteItem)
}
