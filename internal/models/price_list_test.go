package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceList_Total(t *testing.T) {
	prices := &PriceList{Price500g: decimal.RequireFromString("499.99"), Price1kg: decimal.RequireFromString("950.50")}

	tests := []struct {
		name     string
		qty500g  int
		qty1kg   int
		expected string
	}{
		{name: "only 500g", qty500g: 3, expected: "1499.97"},
		{name: "only 1kg", qty1kg: 2, expected: "1901"},
		{name: "both", qty500g: 1, qty1kg: 1, expected: "1450.49"},
		{name: "nothing", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prices.Total(tt.qty500g, tt.qty1kg)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestNewPriceList(t *testing.T) {
	_, err := NewPriceList(decimal.NewFromInt(500), decimal.NewFromInt(1000))
	assert.NoError(t, err)

	_, err = NewPriceList(decimal.Zero, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewPriceList(decimal.NewFromInt(500), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
