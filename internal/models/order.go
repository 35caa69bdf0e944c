package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order is one customer purchase as recorded in the orders file
type Order struct {
	OrderNo      string          `db:"order_no" json:"order_no"`
	Date         string          `db:"order_date" json:"date"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	PhoneNumber  string          `db:"phone_number" json:"phone_number"`
	Address      string          `db:"address" json:"address"`
	Qty500g      int             `db:"qty_500g" json:"qty_500g"`
	Qty1kg       int             `db:"qty_1kg" json:"qty_1kg"`
	Total        decimal.Decimal `db:"total" json:"total"`
	Status       OrderStatus     `db:"status" json:"status"`
}

// MaxPhoneDigits is the longest phone number accepted, the E.164 limit
const MaxPhoneDigits = 15

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusCompleted  OrderStatus = "Completed"
)

// OrderStatuses lists the statuses in the order an operator moves through them
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted}
}

// ParseOrderStatus accepts the display names case-insensitively as well as
// snake and kebab case spellings. An empty string means Pending.
func ParseOrderStatus(s string) (OrderStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)

	if normalized == "" {
		return OrderStatusPending, nil
	}

	for _, status := range OrderStatuses() {
		if strings.ToLower(string(status)) == normalized {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// OrderDetails are the operator-editable fields of an order
type OrderDetails struct {
	CustomerName string
	PhoneNumber  string
	Address      string
	Qty500g      int
	Qty1kg       int
	Status       OrderStatus
}

// NewOrder creates an order dated today with a fresh order number and a
// total computed from prices.
func NewOrder(details OrderDetails, prices *PriceList, today time.Time) (*Order, error) {
	order := &Order{
		OrderNo: GenerateOrderNo(),
		Date:    FormatDate(today),
	}

	if err := order.Apply(details, prices); err != nil {
		return nil, err
	}

	return order, nil
}

// Apply validates details and copies them onto the order, recomputing the
// total. The order is left untouched when validation fails.
func (o *Order) Apply(details OrderDetails, prices *PriceList) error {
	status, err := ParseOrderStatus(string(details.Status))

	if err != nil {
		return err
	}

	next := *o
	next.CustomerName = strings.TrimSpace(details.CustomerName)
	next.PhoneNumber = strings.TrimSpace(details.PhoneNumber)
	next.Address = strings.TrimSpace(details.Address)
	next.Qty500g = details.Qty500g
	next.Qty1kg = details.Qty1kg
	next.Status = status

	if err := next.Validate(); err != nil {
		return err
	}

	next.Total = prices.Total(next.Qty500g, next.Qty1kg)
	*o = next

	return nil
}

// Validate checks the field rules an order must satisfy before it is stored
func (o *Order) Validate() error {
	if o.Qty500g < 0 || o.Qty1kg < 0 {
		return ErrNegativeQuantity
	}

	if o.Qty500g == 0 && o.Qty1kg == 0 {
		return ErrNoProduct
	}

	if !isDigits(o.PhoneNumber) || len(o.PhoneNumber) > MaxPhoneDigits {
		return ErrInvalidPhone
	}

	if _, err := ParseOrderStatus(string(o.Status)); err != nil {
		return err
	}

	if _, err := ParseDate(o.Date); err != nil {
		return err
	}

	return nil
}

// LineItem is one priced row of an order, used on receipts
type LineItem struct {
	Size      Size
	Quantity  int
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// LineItems returns a row per size with a nonzero quantity, priced from prices
func (o *Order) LineItems(prices *PriceList) []LineItem {
	items := make([]LineItem, 0, 2)

	for _, size := range Sizes() {
		qty := o.Quantity(size)
		if qty <= 0 {
			continue
		}

		unit := prices.Price(size)
		items = append(items, LineItem{
			Size:      size,
			Quantity:  qty,
			UnitPrice: unit,
			Amount:    unit.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	return items
}

// Quantity returns the ordered count of the given size
func (o *Order) Quantity(size Size) int {
	switch size {
	case Size500g:
		return o.Qty500g
	case Size1kg:
		return o.Qty1kg
	}
	return 0
}

// DisplayPhone returns the phone number formatted for tables and receipts
func (o *Order) DisplayPhone() string {
	return FormatPhone(o.PhoneNumber)
}
