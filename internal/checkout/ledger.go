package checkout

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

// acceptedLine is a cart line the ledger reserved stock for, carrying the
// authoritative catalog name and price captured during the locked lookup.
type acceptedLine struct {
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice int64
}

// reserveStock checks and decrements stock for every cart line as one unit,
// inside the caller's transaction. Lines are processed in cart insertion
// order. All lines are validated under row locks before any decrement, so a
// rejection leaves stock untouched even on storage engines with weak
// rollback guarantees. On rejection the caller must roll back; on error the
// caller must roll back and report an internal failure.
func reserveStock(ctx context.Context, tx *sql.Tx, lines []domain.CartLine) ([]acceptedLine, *Rejection, error) {
	accepted := make([]acceptedLine, 0, len(lines))

	for _, line := range lines {
		var (
			name  string
			price int64
			stock int
		)
		err := tx.QueryRowContext(ctx, `
			SELECT name, price, stock
			FROM menus
			WHERE id = $1
			FOR UPDATE
		`, line.ItemID).Scan(&name, &price, &stock)
		if err == sql.ErrNoRows {
			return nil, rejectItemNotFound(line.ItemID), nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("lock menu item %s: %w", line.ItemID, err)
		}

		if stock < line.Quantity {
			return nil, rejectInsufficientStock(line.ItemID, line.Quantity, stock), nil
		}

		accepted = append(accepted, acceptedLine{
			ItemID:    line.ItemID,
			Name:      name,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}

	for _, line := range accepted {
		result, err := tx.ExecContext(ctx, `
			UPDATE menus
			SET stock = stock - $2
			WHERE id = $1 AND stock >= $2
		`, line.ItemID, line.Quantity)
		if err != nil {
			return nil, nil, fmt.Errorf("decrement stock for %s: %w", line.ItemID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return nil, nil, fmt.Errorf("decrement stock for %s: %w", line.ItemID, err)
		}

		// Guard against a decrement racing past the locked check.
		if rowsAffected == 0 {
			return nil, rejectInsufficientStock(line.ItemID, line.Quantity, 0), nil
		}
	}

	return accepted, nil, nil
}
