package menu

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const categoryColumns = `id, restaurant_id, name, sort_order, discount_percentage,
	discount_start, discount_end, created_at, updated_at`

const itemColumns = `id, restaurant_id, category_id, name, description, price,
	discounted_price, discount_percentage, discount_start, discount_end,
	is_available, kitchen_station, image_url, created_at, updated_at`

func (r *postgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_categories
		  (id, restaurant_id, name, sort_order, discount_percentage, discount_start, discount_end)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.RestaurantID, c.Name, c.SortOrder, c.DiscountPercentage,
		c.DiscountStart, c.DiscountEnd)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListCategories(ctx context.Context, restaurantID string) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM menu_categories
		WHERE restaurant_id=$1 ORDER BY sort_order ASC, created_at ASC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.SortOrder,
			&c.DiscountPercentage, &c.DiscountStart, &c.DiscountEnd,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	c := &Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM menu_categories WHERE id=$1`, id).
		Scan(&c.ID, &c.RestaurantID, &c.Name, &c.SortOrder,
			&c.DiscountPercentage, &c.DiscountStart, &c.DiscountEnd,
			&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM menu_categories WHERE id=$1`, id)
	return err
}

func (r *postgresRepo) CreateItem(ctx context.Context, item *MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items
		  (id, restaurant_id, category_id, name, description, price,
		   discounted_price, discount_percentage, discount_start, discount_end,
		   is_available, kitchen_station, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		item.ID, item.RestaurantID, item.CategoryID, item.Name, item.Description,
		item.Price, item.DiscountedPrice, item.DiscountPercentage,
		item.DiscountStart, item.DiscountEnd, item.IsAvailable,
		item.KitchenStation, item.ImageURL)
	if err != nil {
		return fmt.Errorf("insert menu_item: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetItem(ctx context.Context, id string) (*MenuItem, error) {
	return scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM menu_items WHERE id=$1`, id))
}

func (r *postgresRepo) ListItems(ctx context.Context, restaurantID string) ([]*MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM menu_items
		WHERE restaurant_id=$1 ORDER BY created_at ASC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*MenuItem
	for rows.Next() {
		item := &MenuItem{}
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.CategoryID,
			&item.Name, &item.Description, &item.Price, &item.DiscountedPrice,
			&item.DiscountPercentage, &item.DiscountStart, &item.DiscountEnd,
			&item.IsAvailable, &item.KitchenStation, &item.ImageURL,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateItem(ctx context.Context, item *MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE menu_items SET
		  name=$1, description=$2, price=$3, discounted_price=$4,
		  discount_percentage=$5, discount_start=$6, discount_end=$7,
		  kitchen_station=$8, image_url=$9, updated_at=$10
		WHERE id=$11`,
		item.Name, item.Description, item.Price, item.DiscountedPrice,
		item.DiscountPercentage, item.DiscountStart, item.DiscountEnd,
		item.KitchenStation, item.ImageURL, time.Now(), item.ID)
	return err
}

func (r *postgresRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET is_available=$1, updated_at=$2 WHERE id=$3`,
		available, time.Now(), id)
	return err
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	return err
}

func scanItem(row *sql.Row) (*MenuItem, error) {
	item := &MenuItem{}
	err := row.Scan(&item.ID, &item.RestaurantID, &item.CategoryID,
		&item.Name, &item.Description, &item.Price, &item.DiscountedPrice,
		&item.DiscountPercentage, &item.DiscountStart, &item.DiscountEnd,
		&item.IsAvailable, &item.KitchenStation, &item.ImageURL,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}
