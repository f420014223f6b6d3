package domain

import "time"

// CartLine is one pending selection in a customer's cart. Price is cached
// from the catalog at add time for display; checkout always re-reads the
// catalog price before charging.
type CartLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Image    string `json:"image,omitempty"`
}

// Cart holds a customer's pre-checkout selections. Lines keep insertion
// order so checkout failures are reproducible across retries.
type Cart struct {
	CustomerID string     `json:"customer_id"`
	Lines      []CartLine `json:"lines"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Total sums the cached line prices. Display and minimum-order checks only.
func (c Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}
