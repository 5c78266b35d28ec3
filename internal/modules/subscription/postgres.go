package subscription

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, sub *Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions
		  (id, restaurant_id, plan_id, status,
		   current_period_start, current_period_end, trial_ends_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		sub.ID, sub.RestaurantID, sub.PlanID, sub.Status,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.TrialEndsAt)
	return err
}

func (r *postgresRepo) GetByRestaurant(ctx context.Context, restaurantID string) (*Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, restaurant_id, plan_id, status,
		       current_period_start, current_period_end,
		       trial_ends_at, cancelled_at, cancel_reason, created_at, updated_at
		FROM subscriptions WHERE restaurant_id = $1`, restaurantID)
	return scanSubscription(row)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status, reason string) error {
	now := time.Now()
	var cancelledAt interface{}
	if status == StatusCancelled {
		cancelledAt = now
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status=$1, cancel_reason=COALESCE(NULLIF($2,''), cancel_reason),
		    cancelled_at=COALESCE($3, cancelled_at), updated_at=$4
		WHERE id=$5`,
		status, reason, cancelledAt, now, id)
	return err
}

func (r *postgresRepo) UpdatePlan(ctx context.Context, id, planID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET plan_id=$1, updated_at=$2 WHERE id=$3`,
		planID, time.Now(), id)
	return err
}

func (r *postgresRepo) RenewPeriod(ctx context.Context, id string, start, end interface{}) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET current_period_start=$1, current_period_end=$2, updated_at=$3 WHERE id=$4`,
		start, end, time.Now(), id)
	return err
}

func (r *postgresRepo) ListExpired(ctx context.Context) ([]*Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, restaurant_id, plan_id, status,
		       current_period_start, current_period_end,
		       trial_ends_at, cancelled_at, cancel_reason, created_at, updated_at
		FROM subscriptions
		WHERE current_period_end < NOW() AND status IN ('active','trial')`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []*Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *postgresRepo) CreateInvoice(ctx context.Context, inv *Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscription_invoices
		  (id, subscription_id, restaurant_id, number, amount, currency,
		   status, period_start, period_end, due_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		inv.ID, inv.SubscriptionID, inv.RestaurantID, inv.Number, inv.Amount,
		inv.Currency, inv.Status, inv.PeriodStart, inv.PeriodEnd, inv.DueDate)
	return err
}

func (r *postgresRepo) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, subscription_id, restaurant_id, number, amount, currency,
		       status, period_start, period_end, due_date, paid_at, created_at
		FROM subscription_invoices WHERE id = $1`, id)
	return scanInvoice(row)
}

func (r *postgresRepo) ListInvoices(ctx context.Context, restaurantID string) ([]*Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subscription_id, restaurant_id, number, amount, currency,
		       status, period_start, period_end, due_date, paid_at, created_at
		FROM subscription_invoices
		WHERE restaurant_id = $1 ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var invs []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *postgresRepo) MarkInvoicePaid(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscription_invoices SET status=$1, paid_at=$2 WHERE id=$3`,
		InvoicePaid, time.Now(), id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(row rowScanner) (*Subscription, error) {
	var s Subscription
	var cancelReason sql.NullString
	err := row.Scan(&s.ID, &s.RestaurantID, &s.PlanID, &s.Status,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd,
		&s.TrialEndsAt, &s.CancelledAt, &cancelReason, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.CancelReason = cancelReason.String
	return &s, nil
}

func scanInvoice(row rowScanner) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.SubscriptionID, &inv.RestaurantID, &inv.Number,
		&inv.Amount, &inv.Currency, &inv.Status, &inv.PeriodStart, &inv.PeriodEnd,
		&inv.DueDate, &inv.PaidAt, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
