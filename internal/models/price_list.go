package models

import "github.com/shopspring/decimal"

// Size is a product size with its own unit price
type Size string

const (
	Size500g Size = "500g"
	Size1kg  Size = "1kg"
)

// Sizes lists the sizes in display order
func Sizes() []Size {
	return []Size{Size500g, Size1kg}
}

// PriceList holds the current unit prices
type PriceList struct {
	Price500g decimal.Decimal `db:"price_500g" json:"500g"`
	Price1kg  decimal.Decimal `db:"price_1kg" json:"1kg"`
}

// DefaultPriceList is used when no prices have been saved yet
func DefaultPriceList() *PriceList {
	return &PriceList{
		Price500g: decimal.NewFromInt(500),
		Price1kg:  decimal.NewFromInt(1000),
	}
}

// NewPriceList validates and builds a price list
func NewPriceList(price500g, price1kg decimal.Decimal) (*PriceList, error) {
	p := &PriceList{Price500g: price500g, Price1kg: price1kg}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate requires both prices to be positive
func (p *PriceList) Validate() error {
	if !p.Price500g.IsPositive() || !p.Price1kg.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// Price returns the unit price of size
func (p *PriceList) Price(size Size) decimal.Decimal {
	switch size {
	case Size500g:
		return p.Price500g
	case Size1kg:
		return p.Price1kg
	}
	return decimal.Zero
}

// Total computes qty500g × price500g + qty1kg × price1kg, rounded to cents
func (p *PriceList) Total(qty500g, qty1kg int) decimal.Decimal {
	total := p.Price500g.Mul(decimal.NewFromInt(int64(qty500g))).
		Add(p.Price1kg.Mul(decimal.NewFromInt(int64(qty1kg))))

	return total.Round(2)
}
