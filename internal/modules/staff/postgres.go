package staff

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const memberColumns = `id, restaurant_id, name, email, role,
	perm_kitchen, perm_cashier, perm_waiter, perm_reports, perm_settings,
	password_hash, is_active, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, m *Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO staff
		  (id, restaurant_id, name, email, role,
		   perm_kitchen, perm_cashier, perm_waiter, perm_reports, perm_settings,
		   password_hash, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		m.ID, m.RestaurantID, m.Name, m.Email, m.Role,
		m.Permissions.Kitchen, m.Permissions.Cashier, m.Permissions.Waiter,
		m.Permissions.Reports, m.Permissions.Settings,
		m.PasswordHash, m.IsActive)
	if err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	return scanMember(r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM staff WHERE id=$1`, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, restaurantID, email string) (*Member, error) {
	return scanMember(r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM staff WHERE restaurant_id=$1 AND email=$2`,
		restaurantID, email))
}

func (r *postgresRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM staff WHERE restaurant_id=$1 ORDER BY created_at ASC`,
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Email, &m.Role,
			&m.Permissions.Kitchen, &m.Permissions.Cashier, &m.Permissions.Waiter,
			&m.Permissions.Reports, &m.Permissions.Settings,
			&m.PasswordHash, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, m *Member) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE staff SET
		  name=$1, role=$2,
		  perm_kitchen=$3, perm_cashier=$4, perm_waiter=$5, perm_reports=$6, perm_settings=$7,
		  password_hash=$8, is_active=$9, updated_at=$10
		WHERE id=$11`,
		m.Name, m.Role,
		m.Permissions.Kitchen, m.Permissions.Cashier, m.Permissions.Waiter,
		m.Permissions.Reports, m.Permissions.Settings,
		m.PasswordHash, m.IsActive, time.Now(), m.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id=$1`, id)
	return err
}

func scanMember(row *sql.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Email, &m.Role,
		&m.Permissions.Kitchen, &m.Permissions.Cashier, &m.Permissions.Waiter,
		&m.Permissions.Reports, &m.Permissions.Settings,
		&m.PasswordHash, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
