package handler

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/adapter/api/middleware"
	"giftlist/internal/usecase"
	"giftlist/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type setupUserRequest struct {
	DisplayName string `json:"displayName" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
}

func (h *UserHandler) Setup(c echo.Context) error {
	var req setupUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	caller := usecase.Caller{UID: middleware.UID(c)}
	if identity := middleware.Identity(c); identity != nil {
		caller.Email = identity.Email
		caller.Name = identity.Name
	}

	user, isNew, err := h.userUseCase.Setup(c.Request().Context(), caller, usecase.SetupInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		return response.Error(c, err)
	}

	body := map[string]interface{}{
		"user":  user,
		"isNew": isNew,
	}
	if isNew {
		return response.Created(c, body)
	}
	return response.Success(c, body)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user": user,
	})
}

func (h *UserHandler) GetQRCode(c echo.Context) error {
	code, err := h.userUseCase.ProfileCode(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, code)
}
