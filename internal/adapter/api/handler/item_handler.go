package handler

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/middleware"
	"giftlist/internal/usecase"
	"giftlist/pkg/response"
)

type ItemHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewItemHandler(wishlistUseCase *usecase.WishlistUseCase) *ItemHandler {
	return &ItemHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type itemRequest struct {
	Name        string              `json:"name"`
	Price       usecase.LooseAmount `json:"price"`
	Description string              `json:"description"`
	ImageURL    string              `json:"imageUrl"`
}

func (r itemRequest) input() usecase.ItemInput {
	return usecase.ItemInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

func (h *ItemHandler) Add(c echo.Context) error {
	return h.add(c, c.Param("id"))
}

func (h *ItemHandler) Update(c echo.Context) error {
	return h.update(c, c.Param("id"))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	return h.delete(c, c.Param("id"))
}

// The linked variants act on the wishlist referenced by the caller's user
// record.

func (h *ItemHandler) AddToLinked(c echo.Context) error {
	id, err := h.wishlistUseCase.LinkedID(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return h.add(c, id)
}

func (h *ItemHandler) UpdateOnLinked(c echo.Context) error {
	id, err := h.wishlistUseCase.LinkedID(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return h.update(c, id)
}

func (h *ItemHandler) DeleteFromLinked(c echo.Context) error {
	id, err := h.wishlistUseCase.LinkedID(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return h.delete(c, id)
}

func (h *ItemHandler) add(c echo.Context, wishlistID string) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	item, wishlist, err := h.wishlistUseCase.AddItem(c.Request().Context(), wishlistID, middleware.UID(c), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"item":        item,
		"totalAmount": wishlist.TotalAmount,
	})
}

func (h *ItemHandler) update(c echo.Context, wishlistID string) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	item, wishlist, err := h.wishlistUseCase.UpdateItem(c.Request().Context(), wishlistID, c.Param("itemId"), middleware.UID(c), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"item":        item,
		"totalAmount": wishlist.TotalAmount,
	})
}

func (h *ItemHandler) delete(c echo.Context, wishlistID string) error {
	wishlist, err := h.wishlistUseCase.DeleteItem(c.Request().Context(), wishlistID, c.Param("itemId"), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message":         "Item deleted successfully",
		"totalAmount":     wishlist.TotalAmount,
		"collectedAmount": wishlist.CollectedAmount,
	})
}
