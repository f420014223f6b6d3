package domain

import "time"

// OrderPlacedEvent is published after an order transaction commits.
type OrderPlacedEvent struct {
	OrderID    string      `json:"order_id"`
	CustomerID string      `json:"customer_id"`
	Lines      []OrderLine `json:"lines"`
	Total      int64       `json:"total"`
	Timestamp  time.Time   `json:"timestamp"`
}
