package router

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/middleware"
	"giftlist/internal/infrastructure/metrics"
	"giftlist/internal/infrastructure/ratelimit"
)

// ContributeAction names the rate-limit policy guarding public contributions.
const ContributeAction = "contribute"

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter, m *metrics.Metrics) {
	SetupHealthRouter(e, m)
	SetupUserRouter(e, authMiddleware)
	SetupWishlistRouter(e, authMiddleware, limiter)
	SetupFriendRouter(e, authMiddleware)
}
