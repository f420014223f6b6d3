package checkout

import (
	"errors"
	"time"
)

const (
	maxAddressLen = 255
	maxNotesLen   = 1000
)

// DeliveryDetails are the customer-supplied delivery fields for an order.
type DeliveryDetails struct {
	Date    time.Time
	Address string
	Notes   string
}

// Validate checks the delivery fields against the form rules: the date must
// be after today, the address is required and bounded, notes are optional
// but bounded. now anchors the "after today" check.
func (d DeliveryDetails) Validate(now time.Time) error {
	if d.Date.IsZero() {
		return errors.New("delivery date is required")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Date.Before(today.AddDate(0, 0, 1)) {
		return errors.New("delivery date must be after today")
	}

	if d.Address == "" {
		return errors.New("delivery address is required")
	}
	if len(d.Address) > maxAddressLen {
		return errors.New("delivery address must be at most 255 characters")
	}

	if len(d.Notes) > maxNotesLen {
		return errors.New("notes must be at most 1000 characters")
	}

	return nil
}
