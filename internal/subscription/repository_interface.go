package subscription

import (
	"context"
	"time"

	"hireflow/internal/plan"
)

// Store is the persistence contract the entitlement core and billing event
// path depend on.
type Store interface {
	GetRecords(ctx context.Context, recruiterID int64) ([]Record, error)
	GetActiveRecords(ctx context.Context, recruiterID int64) ([]Record, error)
	GetByID(ctx context.Context, recordID int64) (*Record, error)
	UpsertTrial(ctx context.Context, recruiterID int64, trialEndsAt time.Time) (*Record, error)
	InsertPlan(ctx context.Context, recruiterID int64, planID string, status Status, periodStart, periodEnd time.Time) (*Record, error)
	UpdateStatus(ctx context.Context, recordID int64, status Status) error
	UpdatePeriod(ctx context.Context, recordID int64, periodStart, periodEnd time.Time) error
	GrantBonus(ctx context.Context, recordID int64, cv, job, match int, windowStart, windowEnd *time.Time) error
	IncrementUsage(ctx context.Context, recordID int64, resource plan.Resource, limit plan.Quota) (int, error)
	ConsumeBonus(ctx context.Context, recordID int64, resource plan.Resource) (int, error)
	ResetPeriod(ctx context.Context, recordID int64, staleEnd, newStart, newEnd time.Time) (bool, error)
}
