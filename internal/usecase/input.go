package usecase

import (
	"bytes"

	"giftlist/internal/domain/entity"
)

const (
	DefaultWishlistName    = "My Wishlist"
	DefaultItemName        = "Unnamed item"
	DefaultContributorName = "Anonymous"
	DefaultDisplayName     = "User"
)

// LooseAmount is an amount as clients send it: a JSON number, a numeric
// string, null, or nothing. Unparseable input decodes without error and is
// reported as invalid.
type LooseAmount struct {
	value entity.Money
	valid bool
}

func AmountOf(m entity.Money) LooseAmount {
	return LooseAmount{value: m, valid: true}
}

func (a *LooseAmount) UnmarshalJSON(b []byte) error {
	*a = LooseAmount{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var m entity.Money
	if err := m.UnmarshalJSON(b); err != nil {
		return nil
	}
	*a = AmountOf(m)
	return nil
}

// Value reports the parsed amount and whether one was supplied.
func (a LooseAmount) Value() (entity.Money, bool) {
	return a.value, a.valid
}

// OrZero is the price policy: missing, invalid or negative becomes zero.
func (a LooseAmount) OrZero() entity.Money {
	if !a.valid || a.value < 0 {
		return 0
	}
	return a.value
}

// Positive is the contribution policy: only amounts above zero pass.
func (a LooseAmount) Positive() (entity.Money, bool) {
	if !a.valid || a.value <= 0 {
		return 0, false
	}
	return a.value, true
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
