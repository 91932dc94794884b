package handler

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/middleware"
	"giftlist/internal/usecase"
	"giftlist/pkg/response"
	"giftlist/pkg/utils"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type createWishlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Absent fields stay nil and are left untouched.
type updateWishlistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *WishlistHandler) Create(c echo.Context) error {
	var req createWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	wishlist, err := h.wishlistUseCase.Create(c.Request().Context(), middleware.UID(c), usecase.CreateWishlistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"wishlist": wishlist,
	})
}

func (h *WishlistHandler) ListMine(c echo.Context) error {
	wishlists, err := h.wishlistUseCase.ListMine(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	page := utils.ParsePageRequest(c)
	if !page.Requested {
		return response.Success(c, map[string]interface{}{
			"wishlists": wishlists,
		})
	}

	return response.Paginated(c, "wishlists", utils.Page(page, wishlists), int64(len(wishlists)), page.Page, page.PageSize)
}

func (h *WishlistHandler) GetMine(c echo.Context) error {
	wishlist, err := h.wishlistUseCase.GetMine(c.Request().Context(), c.Param("id"), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"wishlist": wishlist,
	})
}

func (h *WishlistHandler) GetLinked(c echo.Context) error {
	wishlist, err := h.wishlistUseCase.GetLinked(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"wishlist": wishlist,
	})
}

func (h *WishlistHandler) GetPublic(c echo.Context) error {
	wishlist, err := h.wishlistUseCase.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"wishlist": wishlist,
	})
}

func (h *WishlistHandler) Update(c echo.Context) error {
	var req updateWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	wishlist, err := h.wishlistUseCase.Update(c.Request().Context(), c.Param("id"), middleware.UID(c), usecase.WishlistPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"wishlist": wishlist,
	})
}

func (h *WishlistHandler) Delete(c echo.Context) error {
	wishlist, err := h.wishlistUseCase.SoftDelete(c.Request().Context(), c.Param("id"), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message":  "Wishlist deleted successfully",
		"wishlist": wishlist,
	})
}

func (h *WishlistHandler) Reconcile(c echo.Context) error {
	drift, wishlist, err := h.wishlistUseCase.Reconcile(c.Request().Context(), c.Param("id"), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"drift":    drift,
		"wishlist": wishlist,
	})
}
