package payment

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, rec *Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, method, amount)
		VALUES ($1,$2,$3,$4)`,
		rec.ID, rec.OrderID, rec.Method, rec.Amount)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	for _, item := range rec.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO payment_items (payment_id, order_item_id, name, quantity)
			VALUES ($1,$2,$3,$4)`,
			rec.ID, item.OrderItemID, item.Name, item.Quantity)
		if err != nil {
			return fmt.Errorf("insert payment_item: %w", err)
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, method, amount, created_at
		FROM payments WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.Method, &rec.Amount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range records {
		itemRows, err := r.db.QueryContext(ctx, `
			SELECT order_item_id, name, quantity
			FROM payment_items WHERE payment_id=$1`, rec.ID)
		if err != nil {
			return nil, err
		}
		for itemRows.Next() {
			var item PaidItem
			if err := itemRows.Scan(&item.OrderItemID, &item.Name, &item.Quantity); err != nil {
				itemRows.Close()
				return nil, err
			}
			rec.Items = append(rec.Items, item)
		}
		itemRows.Close()
		if err := itemRows.Err(); err != nil {
			return nil, err
		}
	}
	return records, nil
}
