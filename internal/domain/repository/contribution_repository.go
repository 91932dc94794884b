package repository

import (
	"context"

	"giftlist/internal/domain/entity"
)

type ContributionRepository interface {
	// Record stores the contribution and applies fn's mutation to the target
	// wishlist in one atomic write. Nothing is stored when fn fails.
	Record(ctx context.Context, contribution *entity.Contribution, fn MutationFunc) (*entity.Wishlist, error)

	// ListByWishlist returns the wishlist's contributions, newest first.
	ListByWishlist(ctx context.Context, wishlistID string) ([]*entity.Contribution, error)
}
