package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/pkg/errors"
)

type firestoreContributionRepository struct {
	client *firestore.Client
}

func NewFirestoreContributionRepository(client *firestore.Client) repository.ContributionRepository {
	return &firestoreContributionRepository{client: client}
}

func (r *firestoreContributionRepository) Record(ctx context.Context, contribution *entity.Contribution, fn repository.MutationFunc) (*entity.Wishlist, error) {
	wishlistRef := r.client.Collection(wishlistsCollection).Doc(contribution.WishlistID)
	contributionRef := r.client.Collection(contributionsCollection).Doc(contribution.ID)

	var result *entity.Wishlist
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		wishlist, err := getWishlistInTx(tx, wishlistRef)
		if err != nil {
			return err
		}

		mutation, err := fn(wishlist)
		if err != nil {
			return err
		}

		if err := tx.Create(contributionRef, contribution); err != nil {
			return err
		}
		if err := writeMutation(tx, wishlistRef, mutation, nil); err != nil {
			return err
		}

		result = wishlist.Clone()
		result.Apply(mutation, time.Now())
		return nil
	})
	if err != nil {
		return nil, wrapStoreError("Failed to record contribution", err)
	}

	return result.Normalize(), nil
}

func (r *firestoreContributionRepository) ListByWishlist(ctx context.Context, wishlistID string) ([]*entity.Contribution, error) {
	iter := r.client.Collection(contributionsCollection).
		Where("wishlistId", "==", wishlistID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	contributions := []*entity.Contribution{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list contributions", err)
		}

		contribution, err := decodeContribution(doc)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, contribution)
	}

	return contributions, nil
}
