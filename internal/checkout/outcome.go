package checkout

import "fmt"

// RejectReason classifies why an order could not be placed. All reasons
// except ReasonInternal are expected business outcomes and safe to show
// to the customer.
type RejectReason string

const (
	ReasonEmptyCart         RejectReason = "empty_cart"
	ReasonBelowMinimum      RejectReason = "below_minimum"
	ReasonItemNotFound      RejectReason = "item_not_found"
	ReasonInsufficientStock RejectReason = "insufficient_stock"
	ReasonInternal          RejectReason = "internal_error"
)

// Rejection describes a failed placement. Message is always safe for the
// caller; internal causes are logged, never carried here.
type Rejection struct {
	Reason    RejectReason `json:"reason"`
	Message   string       `json:"message"`
	ItemID    string       `json:"item_id,omitempty"`
	Requested int          `json:"requested,omitempty"`
	Available int          `json:"available,omitempty"`
	Minimum   int64        `json:"minimum,omitempty"`
	CartTotal int64        `json:"cart_total,omitempty"`
}

// Outcome is the result of PlaceOrder: either an order ID or a rejection,
// never both.
type Outcome struct {
	OrderID   string     `json:"order_id,omitempty"`
	Rejection *Rejection `json:"rejection,omitempty"`
}

// Placed reports whether the order was created and committed.
func (o Outcome) Placed() bool {
	return o.Rejection == nil
}

func placed(orderID string) Outcome {
	return Outcome{OrderID: orderID}
}

func rejected(r *Rejection) Outcome {
	return Outcome{Rejection: r}
}

func rejectEmptyCart() *Rejection {
	return &Rejection{
		Reason:  ReasonEmptyCart,
		Message: "your cart is empty",
	}
}

func rejectBelowMinimum(minimum, cartTotal int64) *Rejection {
	return &Rejection{
		Reason:    ReasonBelowMinimum,
		Message:   fmt.Sprintf("order total %d is below the minimum of %d", cartTotal, minimum),
		Minimum:   minimum,
		CartTotal: cartTotal,
	}
}

func rejectItemNotFound(itemID string) *Rejection {
	return &Rejection{
		Reason:  ReasonItemNotFound,
		Message: "a menu item in your cart is no longer available",
		ItemID:  itemID,
	}
}

func rejectInsufficientStock(itemID string, requested, available int) *Rejection {
	return &Rejection{
		Reason:    ReasonInsufficientStock,
		Message:   fmt.Sprintf("only %d left in stock, %d requested", available, requested),
		ItemID:    itemID,
		Requested: requested,
		Available: available,
	}
}

func rejectInternal() *Rejection {
	return &Rejection{
		Reason:  ReasonInternal,
		Message: "something went wrong while placing your order, please try again",
	}
}
