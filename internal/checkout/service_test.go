package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

// mockCarts is an in-memory CartProvider. The DB-backed paths of the
// service are covered by the integration tests; these tests pin down the
// behavior that never reaches the database.
type mockCarts struct {
	cart    domain.Cart
	getErr  error
	cleared bool
}

func (m *mockCarts) Get(context.Context, string) (domain.Cart, error) {
	if m.getErr != nil {
		return domain.Cart{}, m.getErr
	}
	return m.cart, nil
}

func (m *mockCarts) Clear(context.Context, string) error {
	m.cleared = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPlaceOrderRejectsBeforeTouchingTheStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		carts := &mockCarts{cart: domain.Cart{CustomerID: "cust-1"}}
		svc := NewService(nil, carts, discardLogger())

		outcome := svc.PlaceOrder(ctx, "cust-1", DeliveryDetails{})

		require.False(t, outcome.Placed())
		assert.Equal(t, ReasonEmptyCart, outcome.Rejection.Reason)
		assert.False(t, carts.cleared, "cart must be preserved on rejection")
	})

	t.Run("below minimum", func(t *testing.T) {
		carts := &mockCarts{cart: domain.Cart{
			CustomerID: "cust-1",
			Lines:      []domain.CartLine{{ItemID: "a", Quantity: 1, Price: 80_000}},
		}}
		svc := NewService(nil, carts, discardLogger(), WithMinimumOrder(100_000))

		outcome := svc.PlaceOrder(ctx, "cust-1", DeliveryDetails{})

		require.False(t, outcome.Placed())
		assert.Equal(t, ReasonBelowMinimum, outcome.Rejection.Reason)
		assert.Equal(t, int64(100_000), outcome.Rejection.Minimum)
		assert.Equal(t, int64(80_000), outcome.Rejection.CartTotal)
		assert.False(t, carts.cleared)
	})

	t.Run("cart load failure is an internal rejection", func(t *testing.T) {
		carts := &mockCarts{getErr: errors.New("redis down")}
		svc := NewService(nil, carts, discardLogger())

		outcome := svc.PlaceOrder(ctx, "cust-1", DeliveryDetails{})

		require.False(t, outcome.Placed())
		assert.Equal(t, ReasonInternal, outcome.Rejection.Reason)
		assert.NotContains(t, outcome.Rejection.Message, "redis", "internal causes must not leak to callers")
	})
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(nil, &mockCarts{}, discardLogger())
	assert.Equal(t, DefaultMinimumOrder, svc.MinimumOrder())

	svc = NewService(nil, &mockCarts{}, discardLogger(), WithMinimumOrder(50_000))
	assert.Equal(t, int64(50_000), svc.MinimumOrder())
}
