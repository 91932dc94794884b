package repository

import (
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"giftlist/internal/domain/entity"
	apperrors "giftlist/pkg/errors"
)

const (
	usersCollection         = "users"
	wishlistsCollection     = "wishlists"
	contributionsCollection = "contributions"
)

func IsNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return err != nil && status.Code(err) == codes.AlreadyExists
}

// wrapStoreError passes application errors raised inside a transaction
// through untouched and turns everything else into an internal error.
func wrapStoreError(message string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Internal(message, err)
}

func decodeWishlist(doc *firestore.DocumentSnapshot) (*entity.Wishlist, error) {
	var wishlist entity.Wishlist
	if err := doc.DataTo(&wishlist); err != nil {
		return nil, apperrors.Internal("Failed to parse wishlist data", err)
	}
	if wishlist.ID == "" {
		wishlist.ID = doc.Ref.ID
	}
	return wishlist.Normalize(), nil
}

func decodeUser(doc *firestore.DocumentSnapshot) (*entity.User, error) {
	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, apperrors.Internal("Failed to parse user data", err)
	}
	if user.ID == "" {
		user.ID = doc.Ref.ID
	}
	return &user, nil
}

func decodeContribution(doc *firestore.DocumentSnapshot) (*entity.Contribution, error) {
	var contribution entity.Contribution
	if err := doc.DataTo(&contribution); err != nil {
		return nil, apperrors.Internal("Failed to parse contribution data", err)
	}
	return &contribution, nil
}

// mutationUpdates translates a wishlist mutation into Firestore field
// operations. Counter deltas become server-side increments so concurrent
// writers never overwrite each other's totals.
func mutationUpdates(m entity.WishlistMutation) []firestore.Update {
	var updates []firestore.Update

	switch {
	case m.ReplaceItems:
		items := m.Items
		if items == nil {
			items = []entity.Item{}
		}
		updates = append(updates, firestore.Update{Path: "items", Value: items})
	case m.AppendItem != nil:
		updates = append(updates, firestore.Update{Path: "items", Value: firestore.ArrayUnion(*m.AppendItem)})
	}

	if m.SetTotal != nil {
		updates = append(updates, firestore.Update{Path: "totalAmount", Value: int64(*m.SetTotal)})
	} else if m.TotalDelta != 0 {
		updates = append(updates, firestore.Update{Path: "totalAmount", Value: firestore.Increment(int64(m.TotalDelta))})
	}

	if m.SetCollected != nil {
		updates = append(updates, firestore.Update{Path: "collectedAmount", Value: int64(*m.SetCollected)})
	} else if m.CollectedDelta != 0 {
		updates = append(updates, firestore.Update{Path: "collectedAmount", Value: firestore.Increment(int64(m.CollectedDelta))})
	}

	if m.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *m.Name})
	}
	if m.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *m.Description})
	}

	if m.Deactivate {
		updates = append(updates,
			firestore.Update{Path: "isActive", Value: false},
			firestore.Update{Path: "deletedAt", Value: firestore.ServerTimestamp},
		)
	}

	return updates
}
