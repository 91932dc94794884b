package handler

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/middleware"
	"giftlist/internal/usecase"
	"giftlist/pkg/response"
)

type FriendHandler struct {
	friendUseCase *usecase.FriendUseCase
}

func NewFriendHandler(friendUseCase *usecase.FriendUseCase) *FriendHandler {
	return &FriendHandler{
		friendUseCase: friendUseCase,
	}
}

type addByEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type addByQRRequest struct {
	FriendID string `json:"friendId" validate:"required"`
}

func (h *FriendHandler) List(c echo.Context) error {
	friends, err := h.friendUseCase.List(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"friends": friends,
	})
}

func (h *FriendHandler) AddByEmail(c echo.Context) error {
	var req addByEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	friend, err := h.friendUseCase.AddByEmail(c.Request().Context(), middleware.UID(c), req.Email)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Friend added successfully",
		"friend":  friend,
	})
}

func (h *FriendHandler) AddByQR(c echo.Context) error {
	var req addByQRRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	friend, err := h.friendUseCase.AddByQR(c.Request().Context(), middleware.UID(c), req.FriendID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Friend added successfully",
		"friend":  friend,
	})
}

func (h *FriendHandler) Repair(c echo.Context) error {
	repaired, err := h.friendUseCase.Repair(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"repaired": repaired,
	})
}
