package promo

import (
	"context"
	"database/sql"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

type PromoRepository struct {
	db *sql.DB
}

func NewPromoRepository(db *sql.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

// GetByCode returns the active promo for the code if today falls inside its
// validity window, or nil when no such promo exists.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*domain.Promo, error) {
	promo := &domain.Promo{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, title, description, discount_type, discount_value, start_date, end_date, usage_limit, usage_count, active
		FROM promos
		WHERE code = $1 AND active AND start_date <= NOW() AND end_date >= NOW()
	`, code).Scan(&promo.ID, &promo.Code, &promo.Title, &promo.Description, &promo.DiscountType, &promo.DiscountValue,
		&promo.StartDate, &promo.EndDate, &promo.UsageLimit, &promo.UsageCount, &promo.Active)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return promo, nil
}

// IncrementUsage records one redemption, refusing to pass the usage limit.
// Returns false when the limit was already reached.
func (r *PromoRepository) IncrementUsage(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE promos
		SET usage_count = usage_count + 1
		WHERE id = $1 AND (usage_limit = 0 OR usage_count < usage_limit)
	`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
