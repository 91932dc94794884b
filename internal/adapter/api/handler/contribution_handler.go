package handler

import (
	"github.com/labstack/echo/v4"

	"giftlist/internal/usecase"
	"giftlist/pkg/response"
)

type ContributionHandler struct {
	contributionUseCase *usecase.ContributionUseCase
}

func NewContributionHandler(contributionUseCase *usecase.ContributionUseCase) *ContributionHandler {
	return &ContributionHandler{
		contributionUseCase: contributionUseCase,
	}
}

type contributeRequest struct {
	Amount          usecase.LooseAmount `json:"amount"`
	ContributorName string              `json:"contributorName"`
	Message         string              `json:"message"`
}

func (h *ContributionHandler) Contribute(c echo.Context) error {
	var req contributeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	contribution, wishlist, err := h.contributionUseCase.Contribute(c.Request().Context(), c.Param("id"), usecase.ContributeInput{
		Amount:          req.Amount,
		ContributorName: req.ContributorName,
		Message:         req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"success":         true,
		"message":         "Contribution recorded (simulated, no payment was made)",
		"contribution":    contribution,
		"collectedAmount": wishlist.CollectedAmount,
	})
}

func (h *ContributionHandler) List(c echo.Context) error {
	contributions, err := h.contributionUseCase.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"contributions": contributions,
	})
}
