package restaurant

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const restaurantColumns = `id, name, username, currency, address, phone, is_active, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, rest *Restaurant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, username, currency, address, phone, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rest.ID, rest.Name, rest.Username, rest.Currency, rest.Address, rest.Phone, rest.IsActive)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	return scanRestaurant(r.db.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id=$1`, id))
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*Restaurant, error) {
	return scanRestaurant(r.db.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE username=$1`, username))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Restaurant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Restaurant
	for rows.Next() {
		rest := &Restaurant{}
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Username, &rest.Currency,
			&rest.Address, &rest.Phone, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, rest *Restaurant) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE restaurants SET name=$1, address=$2, phone=$3, updated_at=$4 WHERE id=$5`,
		rest.Name, rest.Address, rest.Phone, time.Now(), rest.ID)
	return err
}

func scanRestaurant(row *sql.Row) (*Restaurant, error) {
	rest := &Restaurant{}
	err := row.Scan(&rest.ID, &rest.Name, &rest.Username, &rest.Currency,
		&rest.Address, &rest.Phone, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rest, nil
}
