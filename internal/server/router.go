package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"auction-house/internal/auction"
	"auction-house/internal/auth"
	"auction-house/internal/notification"
	auctionHandler "auction-house/services/auction/handler"
	notificationHandler "auction-house/services/notifications/handler"
	userHandler "auction-house/services/users/handler"
)

// RouterConfig tunes the request middleware.
type RouterConfig struct {
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(gate *auth.Gate, ledger *auction.Ledger, dispatcher *notification.Dispatcher, cfg RouterConfig) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	if cfg.RateLimitMax > 0 {
		router.Use(RateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax))
	}

	users := userHandler.NewUserHandler(gate)
	items := auctionHandler.NewAuctionHandler(ledger)
	notifications := notificationHandler.NewNotificationHandler(dispatcher)

	authRequired := AuthRequired(gate)

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("/register", users.RegisterHandler)
		userRoutes.POST("/login", users.LoginHandler)
		userRoutes.GET("/profile", authRequired, users.ProfileHandler)
		userRoutes.POST("/request-password-reset", users.RequestResetHandler)
		userRoutes.POST("/reset-password/:token", users.ResetPasswordHandler)
	}

	itemRoutes := router.Group("/items")
	{
		itemRoutes.GET("", items.ListItemsHandler)
		itemRoutes.POST("", authRequired, items.CreateItemHandler)
		itemRoutes.GET("/:item_id", items.GetItemHandler)
		itemRoutes.PUT("/:item_id", authRequired, items.UpdateItemHandler)
		itemRoutes.DELETE("/:item_id", authRequired, items.DeleteItemHandler)
		itemRoutes.GET("/:item_id/bids", items.GetBidsByItemHandler)
		itemRoutes.POST("/:item_id/bids", authRequired, items.PlaceBidHandler)
	}

	notificationRoutes := router.Group("/notifications")
	{
		notificationRoutes.GET("", authRequired, notifications.ListUnreadHandler)
		notificationRoutes.POST("/mark-read", authRequired, notifications.MarkReadHandler)
	}

	return router
}
