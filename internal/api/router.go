package api

import (
	v1 "github.com/laundrycare/lce/internal/api/v1"
	"github.com/laundrycare/lce/internal/config"
	"github.com/laundrycare/lce/internal/rest/middleware"
	"github.com/laundrycare/lce/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Subscription *v1.SubscriptionHandler
	Pickup       *v1.PickupHandler
	Invoice      *v1.InvoiceHandler
	Credit       *v1.CreditHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.POST("", handlers.Subscription.CreateSubscription)
		subscriptions.GET("", handlers.Subscription.ListSubscriptions)
		subscriptions.GET("/:id", handlers.Subscription.GetSubscription)
		subscriptions.POST("/:id/cancel", handlers.Subscription.CancelSubscription)
		subscriptions.POST("/:id/pause", handlers.Subscription.PauseSubscription)
		subscriptions.POST("/:id/resume", handlers.Subscription.ResumeSubscription)
		subscriptions.POST("/:id/switch", handlers.Subscription.SwitchPlan)
		subscriptions.POST("/:id/upgrade", handlers.Subscription.UpgradeSubscription)
		subscriptions.POST("/:id/downgrade", handlers.Subscription.DowngradeSubscription)
		subscriptions.POST("/:id/usage", handlers.Subscription.ProcessBagUsage)
	}

	pickups := router.Group("/pickups")
	{
		pickups.POST("", handlers.Pickup.SchedulePickup)
		pickups.POST("/recurring", handlers.Pickup.ScheduleRecurring)
		pickups.POST("/quote", handlers.Pickup.QuotePPO)
		pickups.GET("/next-available", handlers.Pickup.NextAvailable)
		pickups.GET("/holidays", handlers.Pickup.UpcomingHolidays)
	}

	invoices := router.Group("/invoices")
	{
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/pay", handlers.Invoice.PayInvoice)
		invoices.POST("/:id/refund", handlers.Invoice.RefundInvoice)
	}

	credits := router.Group("/credits")
	{
		credits.POST("", handlers.Credit.GrantCredit)
		credits.GET("/:user_id/balance", handlers.Credit.GetBalance)
		credits.GET("/:user_id/history", handlers.Credit.GetHistory)
	}
}
