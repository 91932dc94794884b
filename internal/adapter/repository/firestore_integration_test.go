package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist/internal/domain/entity"
	"giftlist/pkg/errors"
)

// These tests talk to the Firestore emulator and are skipped without it:
//
//	gcloud emulators firestore start --host-port=localhost:8081
//	FIRESTORE_EMULATOR_HOST=localhost:8081 go test ./internal/adapter/repository/
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "giftlist-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestFirestoreWishlistCounters(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	users := NewFirestoreUserRepository(client)
	wishlists := NewFirestoreWishlistRepository(client)
	contributions := NewFirestoreContributionRepository(client)

	owner := &entity.User{ID: uuid.NewString(), DisplayName: "Owner", CreatedAt: time.Now()}
	require.NoError(t, users.Create(ctx, owner))

	w := &entity.Wishlist{ID: uuid.NewString(), UserID: owner.ID, Name: "Emulated", Items: []entity.Item{}, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, wishlists.Create(ctx, w, true))

	err := wishlists.Create(ctx, &entity.Wishlist{ID: uuid.NewString(), UserID: owner.ID, IsActive: true}, true)
	assert.True(t, errors.Is(err, "CONFLICT"))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := wishlists.Mutate(ctx, w.ID, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
				return w.PlanAddItem(entity.Item{ID: fmt.Sprintf("item-%d", i), Price: entity.Money(1000 * (i + 1))})
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := wishlists.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 5)
	assert.Equal(t, entity.Money(15000), got.TotalAmount)

	c := &entity.Contribution{ID: uuid.NewString(), WishlistID: w.ID, Amount: 2500, ContributorName: "Anonymous", CreatedAt: time.Now()}
	got, err = contributions.Record(ctx, c, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		return w.PlanContribution(c.Amount)
	})
	require.NoError(t, err)
	assert.Equal(t, entity.Money(2500), got.CollectedAmount)

	before, err := client.Collection(wishlistsCollection).Doc(w.ID).Get(ctx)
	require.NoError(t, err)

	var drift entity.Drift
	_, err = wishlists.MutateWithLedger(ctx, w.ID, func(w *entity.Wishlist, ledger []*entity.Contribution) (entity.WishlistMutation, error) {
		var m entity.WishlistMutation
		m, drift = w.PlanReconcile(ledger)
		return m, nil
	})
	require.NoError(t, err)
	assert.False(t, drift.Repaired)

	after, err := client.Collection(wishlistsCollection).Doc(w.ID).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.UpdateTime, after.UpdateTime, "a reconcile without drift writes nothing")

	deleted, err := wishlists.Mutate(ctx, w.ID, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		return w.PlanSoftDelete(true)
	})
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedAt)

	stored, err := users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.WishlistID)

	got, err = wishlists.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.DeletedAt)
	assert.True(t, got.DeletedAt.Equal(*deleted.DeletedAt), "returned deletedAt is the stored server timestamp")
}

func TestFirestoreFriendEdges(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	users := NewFirestoreUserRepository(client)

	a := &entity.User{ID: uuid.NewString(), DisplayName: "A"}
	b := &entity.User{ID: uuid.NewString(), DisplayName: "B"}
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	require.NoError(t, users.AddFriendEdge(ctx, a.ID, b.ID))
	require.NoError(t, users.AddFriendEdge(ctx, b.ID, a.ID))

	gotA, err := users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, gotA.Friends)

	listing, err := users.ListByFriend(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, b.ID, listing[0].ID)

	err = users.AddFriendEdge(ctx, a.ID, uuid.NewString())
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
