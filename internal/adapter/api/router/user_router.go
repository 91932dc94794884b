package router

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/handler"
	"giftlist/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/api/users")
	users.Use(authMiddleware.Authenticate)

	users.POST("/setup", userHandler.Setup)
	users.GET("/me", userHandler.GetProfile)
	users.GET("/me/qr-code", userHandler.GetQRCode)
}
