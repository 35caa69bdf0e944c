package models

import "errors"

var (
	ErrNoProduct        = errors.New("please select at least one product (500g or 1kg)")
	ErrNegativeQuantity = errors.New("quantities cannot be negative")
	ErrInvalidPhone     = errors.New("phone number must contain 1 to 15 digits only")
	ErrInvalidStatus    = errors.New("unknown order status")
	ErrInvalidDate      = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidPrice     = errors.New("prices must be greater than zero")
)
