package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func (r *firestoreWishlistRepository) Create(ctx context.Context, wishlist *entity.Wishlist, linkOwner bool) error {
	ref := r.client.Collection(wishlistsCollection).Doc(wishlist.ID)

	if !linkOwner {
		if _, err := ref.Create(ctx, wishlist); err != nil {
			return errors.Internal("Failed to create wishlist", err)
		}
		return nil
	}

	userRef := r.client.Collection(usersCollection).Doc(wishlist.UserID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(userRef)
		if err != nil {
			if IsNotFound(err) {
				return errors.NotFound("User", nil)
			}
			return err
		}

		owner, err := decodeUser(snap)
		if err != nil {
			return err
		}
		if owner.WishlistID != "" {
			return errors.Conflict("User already has a wishlist")
		}

		if err := tx.Create(ref, wishlist); err != nil {
			return err
		}
		return tx.Update(userRef, []firestore.Update{{Path: "wishlistId", Value: wishlist.ID}})
	})
	if err != nil {
		return wrapStoreError("Failed to create wishlist", err)
	}

	logger.Info("Created wishlist %s linked to user %s", wishlist.ID, wishlist.UserID)
	return nil
}

func (r *firestoreWishlistRepository) GetByID(ctx context.Context, id string) (*entity.Wishlist, error) {
	doc, err := r.client.Collection(wishlistsCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Wishlist", nil)
		}
		return nil, errors.Internal("Failed to get wishlist", err)
	}
	return decodeWishlist(doc)
}

func (r *firestoreWishlistRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Wishlist, error) {
	// Single equality filter: no composite index needed. Callers filter and
	// sort the result themselves.
	iter := r.client.Collection(wishlistsCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var wishlists []*entity.Wishlist
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list wishlists", err)
		}

		wishlist, err := decodeWishlist(doc)
		if err != nil {
			logger.Warn("Skipping wishlist %s: %v", doc.Ref.ID, err)
			continue
		}
		wishlists = append(wishlists, wishlist)
	}

	return wishlists, nil
}

func (r *firestoreWishlistRepository) Mutate(ctx context.Context, id string, fn repository.MutationFunc) (*entity.Wishlist, error) {
	return r.mutate(ctx, id, false, func(w *entity.Wishlist, _ []*entity.Contribution) (entity.WishlistMutation, error) {
		return fn(w)
	})
}

func (r *firestoreWishlistRepository) MutateWithLedger(ctx context.Context, id string, fn repository.LedgerMutationFunc) (*entity.Wishlist, error) {
	return r.mutate(ctx, id, true, fn)
}

func (r *firestoreWishlistRepository) mutate(ctx context.Context, id string, withLedger bool, fn repository.LedgerMutationFunc) (*entity.Wishlist, error) {
	ref := r.client.Collection(wishlistsCollection).Doc(id)

	var (
		result      *entity.Wishlist
		deactivated bool
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		wishlist, err := getWishlistInTx(tx, ref)
		if err != nil {
			return err
		}

		var contributions []*entity.Contribution
		if withLedger {
			query := r.client.Collection(contributionsCollection).Where("wishlistId", "==", id)
			docs, err := tx.Documents(query).GetAll()
			if err != nil {
				return err
			}
			for _, doc := range docs {
				contribution, err := decodeContribution(doc)
				if err != nil {
					return err
				}
				contributions = append(contributions, contribution)
			}
		}

		mutation, err := fn(wishlist, contributions)
		if err != nil {
			return err
		}
		deactivated = mutation.Deactivate

		result = wishlist.Clone()
		if mutation.IsEmpty() {
			return nil
		}
		if err := r.applyInTx(tx, ref, wishlist, mutation); err != nil {
			return err
		}
		result.Apply(mutation, time.Now())
		return nil
	})
	if err != nil {
		return nil, wrapStoreError("Failed to update wishlist", err)
	}

	// deletedAt is a server timestamp; read it back instead of returning the
	// local clock.
	if deactivated {
		return r.GetByID(ctx, id)
	}
	return result.Normalize(), nil
}

// applyInTx queues the mutation's writes. Firestore requires every read of a
// transaction to happen before its first write, so the owner lookup for
// UnlinkOwner comes first.
func (r *firestoreWishlistRepository) applyInTx(tx *firestore.Transaction, ref *firestore.DocumentRef, wishlist *entity.Wishlist, mutation entity.WishlistMutation) error {
	var unlinkRef *firestore.DocumentRef
	if mutation.UnlinkOwner {
		userRef := r.client.Collection(usersCollection).Doc(wishlist.UserID)
		snap, err := tx.Get(userRef)
		switch {
		case IsNotFound(err):
		case err != nil:
			return err
		default:
			owner, err := decodeUser(snap)
			if err != nil {
				return err
			}
			if owner.WishlistID == wishlist.ID {
				unlinkRef = userRef
			}
		}
	}

	return writeMutation(tx, ref, mutation, unlinkRef)
}

func getWishlistInTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*entity.Wishlist, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Wishlist", nil)
		}
		return nil, err
	}
	return decodeWishlist(snap)
}

func writeMutation(tx *firestore.Transaction, ref *firestore.DocumentRef, mutation entity.WishlistMutation, unlinkRef *firestore.DocumentRef) error {
	if updates := mutationUpdates(mutation); len(updates) > 0 {
		if err := tx.Update(ref, updates); err != nil {
			return err
		}
	}
	if unlinkRef != nil {
		return tx.Update(unlinkRef, []firestore.Update{{Path: "wishlistId", Value: firestore.Delete}})
	}
	return nil
}
