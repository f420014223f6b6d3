package checkout

import "github.com/joao-fontenele/foodcourt/internal/domain"

// DefaultMinimumOrder is the fallback minimum cart total, in minor
// currency units, when no override is configured.
const DefaultMinimumOrder int64 = 100_000

// ValidateCart checks the cart against the minimum-order policy before any
// store mutation. It is a pure function: nil means proceed, a non-nil
// rejection names the first policy the cart violates. The minimum is
// compared against the cached cart prices; authoritative pricing happens
// later, inside the transaction.
func ValidateCart(cart domain.Cart, minimum int64) *Rejection {
	if cart.Empty() {
		return rejectEmptyCart()
	}

	if total := cart.Total(); total < minimum {
		return rejectBelowMinimum(minimum, total)
	}

	return nil
}
