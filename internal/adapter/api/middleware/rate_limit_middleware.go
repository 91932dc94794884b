package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"giftlist/internal/infrastructure/ratelimit"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
	"giftlist/pkg/response"
)

// RateLimit throttles action per client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, wait := limiter.Allow(ip, action)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s (retry in %v)", ip, action, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, please try again later"))
			}
			return next(c)
		}
	}
}
