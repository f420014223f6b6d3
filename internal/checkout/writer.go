package checkout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

// writeOrder persists the order header and one row per accepted line inside
// the caller's transaction. Totals and line prices come from the ledger's
// catalog snapshot, never from the cart. Must only be called after the
// ledger accepted every line.
func writeOrder(ctx context.Context, tx *sql.Tx, customerID string, details DeliveryDetails, lines []acceptedLine, now time.Time) (*domain.Order, error) {
	order := &domain.Order{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		DeliveryDate:    details.Date,
		DeliveryAddress: details.Address,
		Notes:           details.Notes,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
	}

	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
		order.Total += line.UnitPrice * int64(line.Quantity)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, delivery_date, delivery_address, notes, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, order.ID, order.CustomerID, order.Status, order.DeliveryDate, order.DeliveryAddress, order.Notes, order.Total, order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, item_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), order.ID, line.ItemID, line.Name, line.Quantity, line.Price)
		if err != nil {
			return nil, fmt.Errorf("insert order line %s: %w", line.ItemID, err)
		}
	}

	return order, nil
}
