package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist/internal/domain/entity"
)

func decodeAmount(t *testing.T, body string) LooseAmount {
	t.Helper()
	var req struct {
		Price LooseAmount `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req.Price
}

func TestLooseAmountPricePolicy(t *testing.T) {
	cases := []struct {
		body string
		want entity.Money
	}{
		{`{"price": 30}`, 3000},
		{`{"price": "19.99"}`, 1999},
		{`{"price": 10.005}`, 1001},
		{`{"price": -5}`, 0},
		{`{"price": "abc"}`, 0},
		{`{"price": null}`, 0},
		{`{"price": true}`, 0},
		{`{"price": {"value": 3}}`, 0},
		{`{}`, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, decodeAmount(t, tc.body).OrZero(), tc.body)
	}
}

func TestLooseAmountPositive(t *testing.T) {
	amount, ok := decodeAmount(t, `{"price": "25"}`).Positive()
	assert.True(t, ok)
	assert.Equal(t, entity.Money(2500), amount)

	for _, body := range []string{`{"price": 0}`, `{"price": -5}`, `{"price": "x"}`, `{}`} {
		_, ok := decodeAmount(t, body).Positive()
		assert.False(t, ok, body)
	}
}

func TestDisplayNameFor(t *testing.T) {
	assert.Equal(t, "Ana", displayNameFor("Ana", "Token Name", "ana@example.com"))
	assert.Equal(t, "Token Name", displayNameFor("", "Token Name", "ana@example.com"))
	assert.Equal(t, "ana", displayNameFor("", "", "ana@example.com"))
	assert.Equal(t, DefaultDisplayName, displayNameFor("", "", ""))
	assert.Equal(t, DefaultDisplayName, displayNameFor("", "", "@example.com"))
}

func TestParseFriendCode(t *testing.T) {
	assert.Equal(t, "uid-1", ParseFriendCode("wishlist", "wishlist://friend/uid-1"))
	assert.Equal(t, "uid-1", ParseFriendCode("wishlist", " uid-1 "))
	assert.Equal(t, "", ParseFriendCode("wishlist", ""))
}
