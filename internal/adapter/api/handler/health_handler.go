package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"giftlist/pkg/response"
)

type HealthHandler struct {
	started time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

func (h *HealthHandler) Root(c echo.Context) error {
	return response.Success(c, map[string]string{
		"message": "Wishlist API is running",
	})
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
