package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/dealership/internal/metrics"
	pkgAuth "github.com/polkiloo/dealership/internal/pkg/auth"
	"github.com/polkiloo/dealership/internal/server/http/handlers"
	"github.com/polkiloo/dealership/internal/server/http/middleware"
)

const metricsPath = "/metrics"

// Params collects router dependencies.
type Params struct {
	fx.In

	Facade   handlers.DealershipFacade
	Verifier pkgAuth.SignatureVerifier
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(p.Metrics.Middleware())
	engine.Use(middleware.Compression(metricsPath))

	authHandler := handlers.NewAuthHandler(p.Facade)
	catalogHandler := handlers.NewCatalogHandler(p.Facade)
	cartHandler := handlers.NewCartHandler(p.Facade)
	reservationHandler := handlers.NewReservationHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)
	adminHandler := handlers.NewAdminHandler(p.Facade)
	paymentHandler := handlers.NewPaymentHandler(p.Facade, p.Verifier, p.Logger)
	healthHandler := handlers.NewHealthHandler(p.Facade)

	engine.GET("/health", healthHandler.Check)
	engine.GET(metricsPath, gin.WrapH(p.Metrics.Handler()))

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/catalog", catalogHandler.List)
	api.GET("/catalog/:id", catalogHandler.Get)
	api.POST("/payments/webhook", paymentHandler.Webhook)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(p.Facade))

	cart := authed.Group("/cart")
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/lines", cartHandler.AddLine)
	cart.DELETE("/lines/:itemID", cartHandler.RemoveLine)
	cart.POST("/checkout", cartHandler.Checkout)

	reservations := authed.Group("/reservations")
	reservations.POST("", reservationHandler.Create)
	reservations.GET("", reservationHandler.List)
	reservations.GET("/:id", reservationHandler.Get)
	reservations.POST("/:id/cancel", reservationHandler.Cancel)
	reservations.POST("/:id/convert", reservationHandler.Convert)

	orders := authed.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/cancel", orderHandler.Cancel)

	admin := authed.Group("/admin")
	admin.Use(middleware.StaffOnly())
	admin.POST("/users", adminHandler.CreateUser)
	admin.POST("/catalog", adminHandler.PublishItem)
	admin.PATCH("/catalog/:id", adminHandler.UpdateItem)
	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/:id/confirm", adminHandler.ConfirmOrder)
	admin.POST("/orders/:id/deliver", adminHandler.DeliverOrder)
	admin.POST("/reservations/sweep", adminHandler.SweepReservations)

	return engine
}
