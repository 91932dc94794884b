package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist/pkg/errors"
)

func TestSetupCreatesOnce(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	caller := Caller{UID: "u1", Email: "lea@example.com"}

	user, isNew, err := f.users.Setup(ctx, caller, SetupInput{})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "lea", user.DisplayName)
	require.NotNil(t, user.Email)
	assert.Equal(t, "lea@example.com", *user.Email)

	again, isNew, err := f.users.Setup(ctx, caller, SetupInput{DisplayName: "Ignored"})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, "lea", again.DisplayName)
}

func TestSetupPrefersBodyOverToken(t *testing.T) {
	f := newFixture(t, false)
	user, _, err := f.users.Setup(context.Background(),
		Caller{UID: "u1", Name: "Token Name", Email: "token@example.com"},
		SetupInput{DisplayName: "Body Name", Email: "body@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Body Name", user.DisplayName)
	assert.Equal(t, "body@example.com", *user.Email)
}

func TestSetupWithoutProfileClaims(t *testing.T) {
	f := newFixture(t, false)
	user, _, err := f.users.Setup(context.Background(), Caller{UID: "apple-user"}, SetupInput{})
	require.NoError(t, err)
	assert.Equal(t, DefaultDisplayName, user.DisplayName)
	assert.Nil(t, user.Email)

	_, _, err = f.users.Setup(context.Background(), Caller{}, SetupInput{})
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestProfile(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.users.GetProfile(ctx, "nobody")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	f.user(t, "u1", "Lea", "")
	user, err := f.users.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Lea", user.DisplayName)

	code, err := f.users.ProfileCode(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "wishlist://friend/u1", code.DeepLink)
	assert.Equal(t, stubDataURL, code.QRCode)
}
