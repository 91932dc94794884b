package router

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/handler"
	"giftlist/internal/adapter/api/middleware"
	"giftlist/internal/infrastructure/ratelimit"
)

func SetupWishlistRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	wishlistHandler := handler.GetWishlistHandler()
	itemHandler := handler.GetItemHandler()
	contributionHandler := handler.GetContributionHandler()
	auth := authMiddleware.Authenticate

	api := e.Group("/api")

	// Owner views
	api.GET("/my-wishlists", wishlistHandler.ListMine, auth)
	api.GET("/my-wishlists/:id", wishlistHandler.GetMine, auth)
	api.GET("/my-wishlist", wishlistHandler.GetLinked, auth)
	api.POST("/my-wishlist/items", itemHandler.AddToLinked, auth)
	api.PUT("/my-wishlist/items/:itemId", itemHandler.UpdateOnLinked, auth)
	api.DELETE("/my-wishlist/items/:itemId", itemHandler.DeleteFromLinked, auth)

	wishlists := api.Group("/wishlists")
	wishlists.POST("", wishlistHandler.Create, auth)
	wishlists.PUT("/:id", wishlistHandler.Update, auth)
	wishlists.DELETE("/:id", wishlistHandler.Delete, auth)
	wishlists.POST("/:id/reconcile", wishlistHandler.Reconcile, auth)

	wishlists.POST("/:id/items", itemHandler.Add, auth)
	wishlists.PUT("/:id/items/:itemId", itemHandler.Update, auth)
	wishlists.DELETE("/:id/items/:itemId", itemHandler.Delete, auth)

	// Public: reached by scanning the wishlist code
	wishlists.GET("/:id", wishlistHandler.GetPublic)
	wishlists.GET("/:id/contributions", contributionHandler.List)
	wishlists.POST("/:id/contribute", contributionHandler.Contribute, middleware.RateLimit(limiter, ContributeAction))
}
