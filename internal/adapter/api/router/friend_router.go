package router

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/handler"
	"giftlist/internal/adapter/api/middleware"
)

func SetupFriendRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	friendHandler := handler.GetFriendHandler()

	friends := e.Group("/api/friends")
	friends.Use(authMiddleware.Authenticate)

	friends.GET("", friendHandler.List)
	friends.POST("/add-by-email", friendHandler.AddByEmail)
	friends.POST("/add-by-qr", friendHandler.AddByQR)
	friends.POST("/repair", friendHandler.Repair)
}
