package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/internal/infrastructure/metrics"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
)

type ContributionUseCase struct {
	contributionRepo repository.ContributionRepository
	metrics          *metrics.Metrics

	now   func() time.Time
	newID func() string
}

func NewContributionUseCase(contributionRepo repository.ContributionRepository, m *metrics.Metrics) *ContributionUseCase {
	return &ContributionUseCase{
		contributionRepo: contributionRepo,
		metrics:          m,
		now:              time.Now,
		newID:            uuid.NewString,
	}
}

type ContributeInput struct {
	Amount          LooseAmount
	ContributorName string
	Message         string
}

// Contribute records a simulated contribution. No money moves: the record
// and the wishlist's collected amount are written together.
func (uc *ContributionUseCase) Contribute(ctx context.Context, wishlistID string, input ContributeInput) (*entity.Contribution, *entity.Wishlist, error) {
	amount, ok := input.Amount.Positive()
	if !ok {
		return nil, nil, errors.InvalidAmount("Invalid amount")
	}

	contribution := &entity.Contribution{
		ID:              uc.newID(),
		WishlistID:      wishlistID,
		Amount:          amount,
		ContributorName: orDefault(input.ContributorName, DefaultContributorName),
		Message:         input.Message,
		CreatedAt:       uc.now(),
	}

	wishlist, err := uc.contributionRepo.Record(ctx, contribution, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		m, err := w.PlanContribution(amount)
		if err != nil {
			return entity.WishlistMutation{}, domainError(err)
		}
		return m, nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.metrics.ContributionRecorded(int64(amount))
	logger.WithFields(logrus.Fields{
		"wishlist_id":     wishlistID,
		"contribution_id": contribution.ID,
		"amount":          amount.String(),
	}).Info("Contribution recorded")
	return contribution, wishlist, nil
}

// List returns the wishlist's contributions, newest first. Deleted
// wishlists keep their history.
func (uc *ContributionUseCase) List(ctx context.Context, wishlistID string) ([]*entity.Contribution, error) {
	return uc.contributionRepo.ListByWishlist(ctx, wishlistID)
}
