package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Search        string
	Category      string
	AvailableOnly bool
}

func (r *MenuRepository) List(ctx context.Context, filter ListFilter) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, description, category, price, stock, image, available, created_at
		FROM menus
		WHERE 1=1
	`
	args := []any{}

	if filter.AvailableOnly {
		query += " AND available"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &item.Price, &item.Stock, &item.Image, &item.Available, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	item := &domain.MenuItem{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, price, stock, image, available, created_at
		FROM menus
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Description, &item.Category, &item.Price, &item.Stock, &item.Image, &item.Available, &item.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	item.ID = uuid.New().String()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menus (id, name, description, category, price, stock, image, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, item.ID, item.Name, item.Description, item.Category, item.Price, item.Stock, item.Image, item.Available)
	return err
}

// Update replaces the editable fields of a menu item. Returns nil, without
// error, when the item does not exist; callers translate that to not-found.
func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE menus
		SET name = $2, description = $3, category = $4, price = $5, stock = $6, image = $7, available = $8, updated_at = NOW()
		WHERE id = $1
	`, item.ID, item.Name, item.Description, item.Category, item.Price, item.Stock, item.Image, item.Available)
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

	return r.GetByID(ctx, item.ID)
}

func (r *MenuRepository) SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE menus SET available = $2, updated_at = NOW()
		WHERE id = $1
	`, id, available)
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
