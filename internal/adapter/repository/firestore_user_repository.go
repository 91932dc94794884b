package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
)

// Firestore rejects batched key lookups above this size in "in" filters;
// GetAll batches follow the same bound.
const keyBatchSize = 30

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if isAlreadyExists(err) {
			return errors.Conflict("User already exists")
		}
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("User", nil)
		}
		return nil, errors.Internal("Failed to get user", err)
	}
	return decodeUser(doc)
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.client.Collection(usersCollection).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to find user by email", err)
	}
	return decodeUser(doc)
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(ids))
	for i := 0; i < len(ids); i += keyBatchSize {
		end := i + keyBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		refs := make([]*firestore.DocumentRef, 0, end-i)
		for _, id := range ids[i:end] {
			refs = append(refs, r.client.Collection(usersCollection).Doc(id))
		}

		docs, err := r.client.GetAll(ctx, refs)
		if err != nil {
			return nil, errors.Internal("Failed to fetch users", err)
		}

		for _, doc := range docs {
			if doc == nil || !doc.Exists() {
				continue
			}
			user, err := decodeUser(doc)
			if err != nil {
				logger.Warn("Skipping user %s: %v", doc.Ref.ID, err)
				continue
			}
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *firestoreUserRepository) ListByFriend(ctx context.Context, id string) ([]*entity.User, error) {
	iter := r.client.Collection(usersCollection).Where("friends", "array-contains", id).Documents(ctx)
	defer iter.Stop()

	var users []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list users by friend", err)
		}

		user, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *firestoreUserRepository) AddFriendEdge(ctx context.Context, userID, friendID string) error {
	userRef := r.client.Collection(usersCollection).Doc(userID)
	friendRef := r.client.Collection(usersCollection).Doc(friendID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, ref := range []*firestore.DocumentRef{userRef, friendRef} {
			if _, err := tx.Get(ref); err != nil {
				if IsNotFound(err) {
					return errors.NotFound("User", nil)
				}
				return err
			}
		}

		if err := tx.Update(userRef, []firestore.Update{{Path: "friends", Value: firestore.ArrayUnion(friendID)}}); err != nil {
			return err
		}
		return tx.Update(friendRef, []firestore.Update{{Path: "friends", Value: firestore.ArrayUnion(userID)}})
	})
	if err != nil {
		return wrapStoreError("Failed to add friend", err)
	}

	logger.Info("Friend edge written between %s and %s", userID, friendID)
	return nil
}
