package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines restaurant subscription business logic.
type Service interface {
	ListPlans(ctx context.Context) []Plan
	Create(ctx context.Context, req CreateRequest) (*Subscription, error)
	Get(ctx context.Context, restaurantID string) (*Subscription, error)
	ChangePlan(ctx context.Context, restaurantID string, req ChangePlanRequest) (*Subscription, error)
	Cancel(ctx context.Context, restaurantID string, req CancelRequest) (*Subscription, error)

	// Renew rolls the subscription into its next monthly period and opens
	// an invoice for it. Trial subscriptions become active on first renewal.
	Renew(ctx context.Context, restaurantID string) (*Invoice, error)
	ListInvoices(ctx context.Context, restaurantID string) ([]*Invoice, error)

	// PayInvoice marks an invoice settled; a past_due subscription moves
	// back to active.
	PayInvoice(ctx context.Context, invoiceID string) (*Invoice, error)

	// MarkOverdue moves every subscription whose period lapsed to past_due.
	// Run periodically; returns how many were flagged.
	MarkOverdue(ctx context.Context) (int, error)
}

type service struct{ repo Repository }

// NewService creates a new subscription service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListPlans(ctx context.Context) []Plan { return Plans }

func (s *service) Create(ctx context.Context, req CreateRequest) (*Subscription, error) {
	if req.RestaurantID == "" {
		return nil, fmt.Errorf("restaurant_id is required")
	}
	if PlanByID(req.PlanID) == nil {
		return nil, fmt.Errorf("unknown plan %q", req.PlanID)
	}

	existing, err := s.repo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("restaurant already has a subscription")
	}

	now := time.Now()
	sub := &Subscription{
		ID:                 uuid.New().String(),
		RestaurantID:       req.RestaurantID,
		PlanID:             req.PlanID,
		Status:             StatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}
	if req.TrialDays > 0 {
		sub.Status = StatusTrial
		trialEnd := now.AddDate(0, 0, req.TrialDays)
		sub.TrialEndsAt = &trialEnd
		sub.CurrentPeriodEnd = trialEnd
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, fmt.Errorf("restaurant already has a subscription")
		}
		return nil, err
	}
	return s.repo.GetByRestaurant(ctx, req.RestaurantID)
}

func (s *service) Get(ctx context.Context, restaurantID string) (*Subscription, error) {
	sub, err := s.repo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}
	return sub, nil
}

func (s *service) ChangePlan(ctx context.Context, restaurantID string, req ChangePlanRequest) (*Subscription, error) {
	if PlanByID(req.PlanID) == nil {
		return nil, fmt.Errorf("unknown plan %q", req.PlanID)
	}
	sub, err := s.repo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}
	if sub.Status == StatusCancelled || sub.Status == StatusSuspended {
		return nil, fmt.Errorf("cannot change plan on a %s subscription", sub.Status)
	}
	if sub.PlanID == req.PlanID {
		return nil, fmt.Errorf("restaurant is already on this plan")
	}
	if err := s.repo.UpdatePlan(ctx, sub.ID, req.PlanID); err != nil {
		return nil, err
	}
	return s.repo.GetByRestaurant(ctx, restaurantID)
}

func (s *service) Cancel(ctx context.Context, restaurantID string, req CancelRequest) (*Subscription, error) {
	sub, err := s.repo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}
	if sub.Status == StatusCancelled {
		return nil, fmt.Errorf("subscription is already cancelled")
	}
	if !CanTransition(sub.Status, StatusCancelled) {
		return nil, fmt.Errorf("cannot cancel a subscription in %s status", sub.Status)
	}
	if err := s.repo.UpdateStatus(ctx, sub.ID, StatusCancelled, req.Reason); err != nil {
		return nil, err
	}
	return s.repo.GetByRestaurant(ctx, restaurantID)
}

func (s *service) Renew(ctx context.Context, restaurantID string) (*Invoice, error) {
	sub, err := s.repo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}
	if sub.Status == StatusCancelled || sub.Status == StatusSuspended {
		return nil, fmt.Errorf("cannot renew a %s subscription", sub.Status)
	}
	plan := PlanByID(sub.PlanID)
	if plan == nil {
		return nil, fmt.Errorf("subscription references unknown plan %q", sub.PlanID)
	}

	start := sub.CurrentPeriodEnd
	end := start.AddDate(0, 1, 0)
	if err := s.repo.RenewPeriod(ctx, sub.ID, start, end); err != nil {
		return nil, err
	}
	if sub.Status == StatusTrial {
		if err := s.repo.UpdateStatus(ctx, sub.ID, StatusActive, ""); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	inv := &Invoice{
		ID:             uuid.New().String(),
		SubscriptionID: sub.ID,
		RestaurantID:   sub.RestaurantID,
		Number:         invoiceNumber(now),
		Amount:         plan.MonthlyPrice,
		Currency:       "TRY",
		Status:         InvoiceOpen,
		PeriodStart:    start,
		PeriodEnd:      end,
		DueDate:        now.AddDate(0, 0, 7),
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return s.repo.GetInvoice(ctx, inv.ID)
}

func (s *service) ListInvoices(ctx context.Context, restaurantID string) ([]*Invoice, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("restaurant_id is required")
	}
	return s.repo.ListInvoices(ctx, restaurantID)
}

func (s *service) PayInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}
	if inv.Status == InvoicePaid {
		return nil, fmt.Errorf("invoice is already paid")
	}
	if inv.Status == InvoiceVoid {
		return nil, fmt.Errorf("cannot pay a voided invoice")
	}
	if err := s.repo.MarkInvoicePaid(ctx, invoiceID); err != nil {
		return nil, err
	}

	sub, err := s.repo.GetByRestaurant(ctx, inv.RestaurantID)
	if err == nil && sub.Status == StatusPastDue && CanTransition(StatusPastDue, StatusActive) {
		if err := s.repo.UpdateStatus(ctx, sub.ID, StatusActive, ""); err != nil {
			return nil, err
		}
	}
	return s.repo.GetInvoice(ctx, invoiceID)
}

func (s *service) MarkOverdue(ctx context.Context) (int, error) {
	expired, err := s.repo.ListExpired(ctx)
	if err != nil {
		return 0, err
	}
	flagged := 0
	for _, sub := range expired {
		next := StatusPastDue
		if sub.Status == StatusTrial {
			// Lapsed trials cancel rather than owe money.
			next = StatusCancelled
		}
		if !CanTransition(sub.Status, next) {
			continue
		}
		if err := s.repo.UpdateStatus(ctx, sub.ID, next, "billing period lapsed"); err != nil {
			return flagged, err
		}
		flagged++
	}
	return flagged, nil
}

// StartOverdueSweep runs MarkOverdue on the given interval until stop is
// closed, like the session and notification janitors.
func StartOverdueSweep(svc Service, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := svc.MarkOverdue(context.Background()); err != nil {
					log.Printf("subscription: overdue sweep: %v", err)
				}
			case <-stop:
				return
			}
		}
	}()
}

func invoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV-%s-%04d", t.Format("200601"), rand.Intn(10000))
}
