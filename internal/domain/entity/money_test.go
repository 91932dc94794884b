package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"50", 5000},
		{"12.5", 1250},
		{"12.345", 1235},
		{"-12.345", -1235},
		{" 0.01 ", 1},
		{"0.004", 0},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseMoneyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12,50", "1e20"} {
		_, err := ParseMoney(in)
		assert.Error(t, err, in)
	}
}

func TestMoneyFromFloatRoundsToCents(t *testing.T) {
	m, err := MoneyFromFloat(0.1 + 0.2)
	require.NoError(t, err)
	assert.Equal(t, Money(30), m)
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Money(8000)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 80.00}`, string(b))

	var decoded struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 30.5, "b": "20", "c": null}`), &decoded))
	assert.Equal(t, Money(3050), decoded.A)
	assert.Equal(t, Money(2000), decoded.B)
	assert.Equal(t, Money(0), decoded.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a": "lots"}`), &decoded))
}

func TestSums(t *testing.T) {
	items := []Item{{Price: 2000}, {Price: 3000}, {Price: 1}}
	assert.Equal(t, Money(5001), SumPrices(items))

	contributions := []*Contribution{{Amount: 2500}, {Amount: 100}}
	assert.Equal(t, Money(2600), SumContributions(contributions))
	assert.Equal(t, Money(0), SumContributions(nil))
}
