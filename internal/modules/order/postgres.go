package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, restaurant_id, table_number, status, total_amount,
	notes, payment_method, created_at, updated_at`

// Create inserts the order and all its items inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, restaurant_id, table_number, status, total_amount, notes, payment_method)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.RestaurantID, o.TableNumber, o.Status, o.TotalAmount, o.Notes, o.PaymentMethod)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, menu_item_id, name, price, quantity, notes, kitchen_station)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			item.ID, o.ID, item.MenuItemID, item.Name, item.Price,
			item.Quantity, item.Notes, item.KitchenStation)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o := &Order{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.RestaurantID, &o.TableNumber, &o.Status, &o.TotalAmount,
			&o.Notes, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, id)
	return o, err
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	var args []interface{}
	if f.RestaurantID != "" {
		args = append(args, f.RestaurantID)
		query += fmt.Sprintf(` AND restaurant_id=$%d`, len(args))
	}
	if f.TableNumber != nil {
		args = append(args, *f.TableNumber)
		query += fmt.Sprintf(` AND table_number=$%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.RestaurantID, &o.TableNumber, &o.Status,
			&o.TotalAmount, &o.Notes, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		o.Items, err = r.listItems(ctx, o.ID.String())
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id string, method string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, payment_method=$2, updated_at=$3 WHERE id=$4`,
		StatusPaid, method, time.Now(), id)
	return err
}

func (r *postgresRepo) UpdateTable(ctx context.Context, id string, tableNumber int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET table_number=$1, updated_at=$2 WHERE id=$3`,
		tableNumber, time.Now(), id)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) DeleteByTable(ctx context.Context, restaurantID string, tableNumber int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM order_items WHERE order_id IN (
			SELECT id FROM orders
			WHERE restaurant_id=$1 AND table_number=$2 AND status NOT IN ('paid','cancelled'))`,
		restaurantID, tableNumber)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `
		DELETE FROM orders
		WHERE restaurant_id=$1 AND table_number=$2 AND status NOT IN ('paid','cancelled')`,
		restaurantID, tableNumber)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), tx.Commit()
}

func (r *postgresRepo) listItems(ctx context.Context, orderID string) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, name, price, quantity, notes, kitchen_station
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&item.Price, &item.Quantity, &item.Notes, &item.KitchenStation); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
