package router

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/handler"
	"giftlist/internal/infrastructure/metrics"
)

func SetupHealthRouter(e *echo.Echo, m *metrics.Metrics) {
	healthHandler := handler.GetHealthHandler()
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
}
