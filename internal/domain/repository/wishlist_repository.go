package repository

import (
	"context"

	"giftlist/internal/domain/entity"
)

// MutationFunc inspects the current wishlist inside the store's atomic
// section and returns the field operations to apply. Returning an error
// aborts the write.
type MutationFunc func(w *entity.Wishlist) (entity.WishlistMutation, error)

// LedgerMutationFunc is a MutationFunc that also sees the wishlist's
// contribution history, read in the same atomic section.
type LedgerMutationFunc func(w *entity.Wishlist, contributions []*entity.Contribution) (entity.WishlistMutation, error)

type WishlistRepository interface {
	// Create persists a new wishlist. With linkOwner set, the owner's user
	// record must exist and carry no wishlist reference; it is pointed at
	// the new wishlist in the same write.
	Create(ctx context.Context, wishlist *entity.Wishlist, linkOwner bool) error

	GetByID(ctx context.Context, id string) (*entity.Wishlist, error)

	// ListByOwner returns every wishlist of the user, in no particular order
	// and regardless of state.
	ListByOwner(ctx context.Context, userID string) ([]*entity.Wishlist, error)

	// Mutate reads the wishlist, asks fn for a mutation and applies it
	// atomically. It returns the wishlist as it is after the write.
	Mutate(ctx context.Context, id string, fn MutationFunc) (*entity.Wishlist, error)

	// MutateWithLedger is Mutate with the contribution history in view.
	MutateWithLedger(ctx context.Context, id string, fn LedgerMutationFunc) (*entity.Wishlist, error)
}
