package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used in the orders file
const DateLayout = "2006-01-02"

// GenerateOrderNo returns a short opaque order number
func GenerateOrderNo() string {
	return uuid.New().String()[:8]
}

// FormatDate renders t as a calendar day
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar day
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return t, nil
}

// FormatPhone pads a numeric phone number to 10 digits, restoring the
// leading zero spreadsheets drop. Non-numeric input renders as "Invalid".
func FormatPhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if !isDigits(phone) {
		return "Invalid"
	}

	n, err := strconv.ParseUint(phone, 10, 64)

	if err != nil {
		return phone
	}

	return fmt.Sprintf("%010d", n)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
