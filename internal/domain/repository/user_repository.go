package repository

import (
	"context"

	"giftlist/internal/domain/entity"
)

type UserRepository interface {
	// Create stores a new user. It returns a CONFLICT error when the id is
	// already taken.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByIDs resolves a key set; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	// ListByFriend returns the users whose friend list contains id.
	ListByFriend(ctx context.Context, id string) ([]*entity.User, error)
	// AddFriendEdge records the friendship on both users in one write.
	// Existing edges are left as they are.
	AddFriendEdge(ctx context.Context, userID, friendID string) error
}
