package orders

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, status, delivery_date, delivery_address, notes, total, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.Status, &order.DeliveryDate, &order.DeliveryAddress, &order.Notes, &order.Total, &order.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, name, quantity, price
		FROM order_items
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

// List returns orders newest first, with their lines loaded in one batch
// query. customerID narrows to a single customer when non-empty.
func (r *OrderRepository) List(ctx context.Context, customerID string) ([]domain.Order, error) {
	query := `
		SELECT id, customer_id, status, delivery_date, delivery_address, notes, total, created_at
		FROM orders
	`
	args := []any{}
	if customerID != "" {
		query += " WHERE customer_id = $1"
		args = append(args, customerID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.Status, &order.DeliveryDate, &order.DeliveryAddress, &order.Notes, &order.Total, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.Lines = []domain.OrderLine{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	lineRows, err := r.db.QueryContext(ctx, `
		SELECT order_id, item_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = lineRows.Close() }()

	for lineRows.Next() {
		var orderID string
		var line domain.OrderLine
		if err := lineRows.Scan(&orderID, &line.ItemID, &line.Name, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Lines = append(order.Lines, line)
	}

	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// PopularItem is a menu item ranked by how many orders include it.
type PopularItem struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Orders int    `json:"orders"`
}

// DashboardStats summarizes order activity for the back office.
type DashboardStats struct {
	TotalOrders  int           `json:"total_orders"`
	TodayRevenue int64         `json:"today_revenue"`
	PopularItems []PopularItem `json:"popular_items"`
}

func (r *OrderRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{PopularItems: []PopularItem{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total) FILTER (WHERE created_at::date = CURRENT_DATE), 0)
		FROM orders
	`).Scan(&stats.TotalOrders, &stats.TodayRevenue)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, MAX(name), COUNT(DISTINCT order_id) AS orders
		FROM order_items
		GROUP BY item_id
		ORDER BY orders DESC, item_id
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item PopularItem
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Orders); err != nil {
			return nil, err
		}
		stats.PopularItems = append(stats.PopularItems, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
