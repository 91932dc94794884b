package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist/internal/domain/entity"
	"giftlist/pkg/errors"
)

func TestContributeThenRejectNegative(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	w := f.wishlist(t, "owner", "Gifts")

	contribution, got, err := f.contributions.Contribute(ctx, w.ID, ContributeInput{Amount: price("25")})
	require.NoError(t, err)
	assert.Equal(t, entity.Money(2500), got.CollectedAmount)
	assert.Equal(t, DefaultContributorName, contribution.ContributorName)
	assert.Equal(t, w.ID, contribution.WishlistID)

	_, _, err = f.contributions.Contribute(ctx, w.ID, ContributeInput{Amount: price("-5")})
	assert.True(t, errors.Is(err, "INVALID_AMOUNT"))

	stored, err := f.wishlists.GetMine(ctx, w.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, entity.Money(2500), stored.CollectedAmount)

	history, err := f.contributions.List(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestContributeRejectsUnparseableAmounts(t *testing.T) {
	f := newFixture(t, false)
	w := f.wishlist(t, "owner", "Gifts")

	for _, body := range []string{`{"amount": 0}`, `{"amount": "ten"}`, `{"amount": null}`, `{}`} {
		var input struct {
			Amount LooseAmount `json:"amount"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &input))

		_, _, err := f.contributions.Contribute(context.Background(), w.ID, ContributeInput{Amount: input.Amount})
		assert.True(t, errors.Is(err, "INVALID_AMOUNT"), body)
	}

	history, err := f.contributions.List(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestContributeToMissingWishlist(t *testing.T) {
	f := newFixture(t, false)
	_, _, err := f.contributions.Contribute(context.Background(), "missing", ContributeInput{Amount: price("1")})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestContributionsNewestFirst(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	w := f.wishlist(t, "owner", "Gifts")

	_, _, err := f.contributions.Contribute(ctx, w.ID, ContributeInput{Amount: price("1"), ContributorName: "First"})
	require.NoError(t, err)
	_, _, err = f.contributions.Contribute(ctx, w.ID, ContributeInput{Amount: price("2"), ContributorName: "Second", Message: "Enjoy"})
	require.NoError(t, err)

	history, err := f.contributions.List(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Second", history[0].ContributorName)
	assert.Equal(t, "Enjoy", history[0].Message)
	assert.Equal(t, "First", history[1].ContributorName)

	stored, err := f.wishlists.GetMine(ctx, w.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, entity.Money(300), stored.CollectedAmount)
}
