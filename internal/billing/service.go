package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hireflow/internal/logger"
	"hireflow/internal/metrics"
	"hireflow/internal/plan"
	"hireflow/internal/subscription"
)

var (
	ErrUnknownEventType = errors.New("unknown billing event type")
	ErrNoRecord         = errors.New("no subscription record for event")
	ErrInvalidStatus    = errors.New("invalid subscription status")
)

// Store is the slice of the subscription store billing events write through.
type Store interface {
	GetRecords(ctx context.Context, recruiterID int64) ([]subscription.Record, error)
	InsertPlan(ctx context.Context, recruiterID int64, planID string, status subscription.Status, periodStart, periodEnd time.Time) (*subscription.Record, error)
	UpdateStatus(ctx context.Context, recordID int64, status subscription.Status) error
	UpdatePeriod(ctx context.Context, recordID int64, periodStart, periodEnd time.Time) error
	GrantBonus(ctx context.Context, recordID int64, cv, job, match int, windowStart, windowEnd *time.Time) error
}

// Notifier queues the purchase confirmation. It must not block.
type Notifier interface {
	PlanPurchased(ctx context.Context, recruiterID int64, planName string)
}

type Service interface {
	Apply(ctx context.Context, event Event) error
}

type service struct {
	store    Store
	catalog  *plan.Catalog
	notifier Notifier
}

// NewService builds the billing event applier. notifier may be nil; purchase
// confirmations are then skipped.
func NewService(store Store, catalog *plan.Catalog, notifier Notifier) Service {
	return &service{store: store, catalog: catalog, notifier: notifier}
}

// Apply translates one billing event into a subscription record mutation.
// Records are only ever inserted or updated, never deleted: the resolver's
// latest-wins rule handles superseded rows.
func (s *service) Apply(ctx context.Context, event Event) error {
	switch event.Type {
	case EventPlanPurchased:
		return s.applyPurchase(ctx, event)
	case EventStatusChanged:
		return s.applyStatusChange(ctx, event)
	case EventPeriodRenewed:
		return s.applyRenewal(ctx, event)
	case EventBonusGranted:
		return s.applyBonus(ctx, event)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}
}

func (s *service) applyPurchase(ctx context.Context, event Event) error {
	def, err := s.catalog.Lookup(event.PlanID)
	if err != nil {
		return err
	}

	periodStart := time.Now()
	if event.PeriodStart != nil {
		periodStart = *event.PeriodStart
	}
	periodEnd := periodStart.AddDate(0, 1, 0)
	if event.PeriodEnd != nil {
		periodEnd = *event.PeriodEnd
	}

	rec, err := s.store.InsertPlan(ctx, event.RecruiterID, event.PlanID, subscription.StatusActive, periodStart, periodEnd)
	if err != nil {
		return err
	}

	metrics.RecordSubscription(event.PlanID)
	logger.Infof("recruiter %d purchased plan %s (record %d)", event.RecruiterID, event.PlanID, rec.ID)

	if s.notifier != nil {
		s.notifier.PlanPurchased(ctx, event.RecruiterID, def.DisplayName)
	}
	return nil
}

func (s *service) applyStatusChange(ctx context.Context, event Event) error {
	status := subscription.Status(event.Status)
	switch status {
	case subscription.StatusActive, subscription.StatusPaused, subscription.StatusCanceled, subscription.StatusTrialing:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, event.Status)
	}

	rec, err := s.targetRecord(ctx, event)
	if err != nil {
		return err
	}

	return s.store.UpdateStatus(ctx, rec.ID, status)
}

func (s *service) applyRenewal(ctx context.Context, event Event) error {
	if event.PeriodStart == nil || event.PeriodEnd == nil {
		return errors.New("period_renewed event requires period_start and period_end")
	}

	rec, err := s.targetRecord(ctx, event)
	if err != nil {
		return err
	}

	return s.store.UpdatePeriod(ctx, rec.ID, *event.PeriodStart, *event.PeriodEnd)
}

func (s *service) applyBonus(ctx context.Context, event Event) error {
	if event.Bonus == nil {
		return errors.New("bonus_granted event requires a bonus payload")
	}
	if event.Bonus.CV < 0 || event.Bonus.Job < 0 || event.Bonus.Match < 0 {
		return errors.New("bonus units must not be negative")
	}

	rec, err := s.targetRecord(ctx, event)
	if err != nil {
		return err
	}

	return s.store.GrantBonus(ctx, rec.ID, event.Bonus.CV, event.Bonus.Job, event.Bonus.Match, event.Bonus.WindowStart, event.Bonus.WindowEnd)
}

// targetRecord picks the newest record matching the event's plan, falling
// back to the newest record overall when the event names no plan. Records
// come back newest first.
func (s *service) targetRecord(ctx context.Context, event Event) (*subscription.Record, error) {
	records, err := s.store.GetRecords(ctx, event.RecruiterID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecord
	}

	if event.PlanID == "" {
		return &records[0], nil
	}
	for i := range records {
		if records[i].PlanID == event.PlanID {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: plan %s", ErrNoRecord, event.PlanID)
}
