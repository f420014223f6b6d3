package promo

import "github.com/joao-fontenele/foodcourt/internal/domain"

// ComputeDiscount returns the discount a promo grants on the given total,
// in minor currency units. Percentage discounts round down; a fixed
// discount never exceeds the total.
func ComputeDiscount(p domain.Promo, total int64) int64 {
	var discount int64
	switch p.DiscountType {
	case domain.DiscountPercentage:
		discount = total * p.DiscountValue / 100
	case domain.DiscountFixed:
		discount = p.DiscountValue
	}

	if discount > total {
		discount = total
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
