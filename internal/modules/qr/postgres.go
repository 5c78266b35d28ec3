package qr

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Token) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qr_tokens (token, restaurant_id, table_number, is_active, expires_at)
		VALUES ($1,$2,$3,$4,$5)`,
		t.Token, t.RestaurantID, t.TableNumber, t.IsActive, t.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert qr_token: %w", err)
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, token string) (*Token, error) {
	t := &Token{}
	err := r.db.QueryRowContext(ctx, `
		SELECT token, restaurant_id, table_number, is_active, expires_at, created_at
		FROM qr_tokens WHERE token=$1`, token).
		Scan(&t.Token, &t.RestaurantID, &t.TableNumber, &t.IsActive, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) Deactivate(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE qr_tokens SET is_active=FALSE WHERE token=$1`, token)
	return err
}

func (r *postgresRepo) DeactivateForTable(ctx context.Context, restaurantID string, tableNumber int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE qr_tokens SET is_active=FALSE
		WHERE restaurant_id=$1 AND table_number=$2 AND is_active=TRUE`,
		restaurantID, tableNumber)
	return err
}
