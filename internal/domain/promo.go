package domain

import "time"

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

type Promo struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int64        `json:"discount_value"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	UsageLimit    int          `json:"usage_limit"`
	UsageCount    int          `json:"usage_count"`
	Active        bool         `json:"active"`
}

// Exhausted reports whether the promo's usage limit has been reached.
// A limit of zero means unlimited.
func (p Promo) Exhausted() bool {
	return p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit
}
