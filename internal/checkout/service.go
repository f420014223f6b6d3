package checkout

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

// CartProvider is the session-scoped cart storage checkout reads from.
// Clear is only ever called after the order transaction commits.
type CartProvider interface {
	Get(ctx context.Context, customerID string) (domain.Cart, error)
	Clear(ctx context.Context, customerID string) error
}

// EventPublisher emits domain events after commit. Optional.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

var meter = otel.Meter("checkout")

// Service places orders: cart validation, stock reservation and order
// persistence under a single all-or-nothing transaction.
type Service struct {
	db        *sql.DB
	carts     CartProvider
	minimum   int64
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time

	placedCounter   metric.Int64Counter
	rejectedCounter metric.Int64Counter
}

type Option func(*Service)

// WithMinimumOrder overrides the minimum cart total required to order.
func WithMinimumOrder(minimum int64) Option {
	return func(s *Service) {
		s.minimum = minimum
	}
}

// WithPublisher emits an OrderPlacedEvent after every successful commit.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(db *sql.DB, carts CartProvider, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		db:      db,
		carts:   carts,
		minimum: DefaultMinimumOrder,
		logger:  logger,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.placedCounter, _ = meter.Int64Counter("checkout.orders.placed",
		metric.WithDescription("Orders successfully placed"))
	s.rejectedCounter, _ = meter.Int64Counter("checkout.orders.rejected",
		metric.WithDescription("Order placements rejected, by reason"))

	return s
}

// MinimumOrder returns the configured minimum cart total.
func (s *Service) MinimumOrder() int64 {
	return s.minimum
}

// PlaceOrder runs the full placement flow for the customer's current cart:
// validate, reserve stock, write the order, commit. Every failure rolls the
// transaction back in full and leaves the cart untouched so the customer
// can correct and retry; the cart is cleared exactly once, after commit.
// Unexpected failures are logged with the customer id and cart contents and
// surface as a generic internal rejection.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, details DeliveryDetails) Outcome {
	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return rejected(s.internalFailure(ctx, "load cart", err, customerID, cart))
	}

	if rej := ValidateCart(cart, s.minimum); rej != nil {
		return s.reject(ctx, rej)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return rejected(s.internalFailure(ctx, "begin transaction", err, customerID, cart))
	}
	defer func() { _ = tx.Rollback() }()

	accepted, rej, err := reserveStock(ctx, tx, cart.Lines)
	if err != nil {
		return rejected(s.internalFailure(ctx, "reserve stock", err, customerID, cart))
	}
	if rej != nil {
		return s.reject(ctx, rej)
	}

	order, err := writeOrder(ctx, tx, customerID, details, accepted, s.now().UTC())
	if err != nil {
		return rejected(s.internalFailure(ctx, "write order", err, customerID, cart))
	}

	if err := tx.Commit(); err != nil {
		return rejected(s.internalFailure(ctx, "commit order", err, customerID, cart))
	}

	// The order is durable from here on. Cart clearing and event publishing
	// are best effort and must not turn a committed order into a failure.
	if err := s.carts.Clear(ctx, customerID); err != nil {
		s.logger.Warn("failed to clear cart after order", "error", err, "customer_id", customerID, "order_id", order.ID)
	}

	if s.publisher != nil {
		event := domain.OrderPlacedEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Lines:      order.Lines,
			Total:      order.Total,
			Timestamp:  order.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, order.ID, event); err != nil {
			s.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	s.placedCounter.Add(ctx, 1)
	s.logger.Info("order placed", "order_id", order.ID, "customer_id", customerID, "total", order.Total)

	return placed(order.ID)
}

func (s *Service) reject(ctx context.Context, rej *Rejection) Outcome {
	s.rejectedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", string(rej.Reason)),
	))
	return rejected(rej)
}

func (s *Service) internalFailure(ctx context.Context, step string, err error, customerID string, cart domain.Cart) *Rejection {
	s.logger.Error("order placement failed",
		"step", step,
		"error", err,
		"customer_id", customerID,
		"cart", cart.Lines,
	)
	s.rejectedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", string(ReasonInternal)),
	))
	return rejectInternal()
}
