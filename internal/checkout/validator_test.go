package checkout

import (
	"testing"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

func TestValidateCart(t *testing.T) {
	lines := func(ls ...domain.CartLine) domain.Cart {
		return domain.Cart{CustomerID: "cust-1", Lines: ls}
	}

	t.Run("rejects empty cart", func(t *testing.T) {
		rej := ValidateCart(lines(), DefaultMinimumOrder)
		if rej == nil {
			t.Fatal("expected rejection")
		}
		if rej.Reason != ReasonEmptyCart {
			t.Fatalf("expected %s, got %s", ReasonEmptyCart, rej.Reason)
		}
	})

	t.Run("rejects cart below minimum with threshold and total", func(t *testing.T) {
		cart := lines(
			domain.CartLine{ItemID: "a", Quantity: 2, Price: 30_000},
			domain.CartLine{ItemID: "b", Quantity: 1, Price: 20_000},
		)

		rej := ValidateCart(cart, 100_000)
		if rej == nil {
			t.Fatal("expected rejection")
		}
		if rej.Reason != ReasonBelowMinimum {
			t.Fatalf("expected %s, got %s", ReasonBelowMinimum, rej.Reason)
		}
		if rej.Minimum != 100_000 {
			t.Fatalf("expected minimum 100000, got %d", rej.Minimum)
		}
		if rej.CartTotal != 80_000 {
			t.Fatalf("expected cart total 80000, got %d", rej.CartTotal)
		}
	})

	t.Run("accepts cart at exactly the minimum", func(t *testing.T) {
		cart := lines(domain.CartLine{ItemID: "a", Quantity: 2, Price: 50_000})

		if rej := ValidateCart(cart, 100_000); rej != nil {
			t.Fatalf("expected no rejection, got %+v", rej)
		}
	})

	t.Run("accepts any non-empty cart when minimum is zero", func(t *testing.T) {
		cart := lines(domain.CartLine{ItemID: "a", Quantity: 1, Price: 1})

		if rej := ValidateCart(cart, 0); rej != nil {
			t.Fatalf("expected no rejection, got %+v", rej)
		}
	})
}
