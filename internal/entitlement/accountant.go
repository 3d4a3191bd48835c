package entitlement

import (
	"context"
	"errors"
	"time"

	"hireflow/internal/logger"
	"hireflow/internal/metrics"
	"hireflow/internal/plan"
	"hireflow/internal/subscription"
)

var (
	// ErrQuotaExceeded: base quota and bonus are both exhausted.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrSubscriptionInactive: no usable plan and no bonus for the resource.
	ErrSubscriptionInactive = errors.New("subscription inactive")
)

// maxIncrementAttempts bounds the internal retry when a period rollover races
// with the increment. Conflicts are never surfaced raw to the caller.
const maxIncrementAttempts = 3

// JobCounter supplies the live count of non-archived job postings, which
// supersedes the stored job counter because postings can be deleted.
type JobCounter interface {
	CountActiveByRecruiter(ctx context.Context, recruiterID int64) (int, error)
}

// Accountant records successful consumption and performs the one-time-plan
// period rollover. All counter mutation goes through the store's single
// conditional statements, so concurrent requests for the same recruiter
// cannot over-grant.
type Accountant struct {
	store    subscription.Store
	catalog  *plan.Catalog
	resolver *Resolver
	jobs     JobCounter
}

func NewAccountant(store subscription.Store, catalog *plan.Catalog, jobs JobCounter) *Accountant {
	return &Accountant{
		store:    store,
		catalog:  catalog,
		resolver: NewResolver(catalog),
		jobs:     jobs,
	}
}

// Increment records one consumed unit after the gated action has already
// succeeded. It mirrors the gate's ordering: the base-plan counter first,
// bonus units only once base quota is unusable. Returns the new base count,
// or the remaining bonus units when the draw came from the bonus pool.
func (a *Accountant) Increment(ctx context.Context, recruiterID int64, resource plan.Resource, now time.Time) (int, error) {
	var lastErr error

	for attempt := 0; attempt < maxIncrementAttempts; attempt++ {
		records, err := a.store.GetRecords(ctx, recruiterID)
		if err != nil {
			return 0, err
		}

		rolled := false
		for i := range records {
			applied, err := a.RolloverIfExpired(ctx, &records[i], now)
			if err != nil && !errors.Is(err, plan.ErrUnknownPlan) {
				return 0, err
			}
			if applied {
				rolled = true
			}
		}
		if rolled {
			// Counters changed under us, start over from fresh rows.
			lastErr = nil
			continue
		}

		jobCount := 0
		if resource == plan.ResourceJob {
			jobCount, err = a.jobs.CountActiveByRecruiter(ctx, recruiterID)
			if err != nil {
				return 0, err
			}
		}

		ep := a.resolver.Resolve(records, jobCount, now)
		if ep.RecordID == 0 {
			return 0, ErrSubscriptionInactive
		}

		if ep.IsSubscriptionActive {
			n, err := a.incrementBase(ctx, ep, resource, jobCount)
			if err == nil {
				metrics.RecordQuotaIncrement(string(resource), string(SourceBase))
				return n, nil
			}
			if !errors.Is(err, subscription.ErrLimitReached) {
				return 0, err
			}
			lastErr = err
		}

		if ep.Bonus.ActiveFor(resource) {
			remaining, err := a.store.ConsumeBonus(ctx, ep.Bonus.RecordID, resource)
			if err == nil {
				metrics.RecordQuotaIncrement(string(resource), string(SourceBonus))
				return remaining, nil
			}
			if !errors.Is(err, subscription.ErrNoBonus) {
				return 0, err
			}
			// Another request drained the last bonus unit; re-resolve once in
			// case a rollover freed base quota meanwhile.
			lastErr = err
			continue
		}

		if !ep.IsSubscriptionActive {
			return 0, ErrSubscriptionInactive
		}
		return 0, ErrQuotaExceeded
	}

	logger.Errorf("increment for recruiter %d gave up after %d attempts: %v", recruiterID, maxIncrementAttempts, lastErr)
	return 0, ErrQuotaExceeded
}

// incrementBase applies the conditional base-counter update. Job usage is
// bounded by the live posting count rather than the stored counter, which
// only tracks creations for audit.
func (a *Accountant) incrementBase(ctx context.Context, ep EffectivePlan, resource plan.Resource, jobCount int) (int, error) {
	limit := ep.LimitFor(resource)
	if resource == plan.ResourceJob {
		if !limit.Allows(jobCount) {
			return 0, subscription.ErrLimitReached
		}
		return a.store.IncrementUsage(ctx, ep.RecordID, resource, plan.Unlimited())
	}
	return a.store.IncrementUsage(ctx, ep.RecordID, resource, limit)
}

// RolloverIfExpired resets a one-time plan's counters once its period has
// elapsed and advances the window in whole periods anchored at the stale
// period end, so a record left stale for months keeps its billing day. The
// store update is keyed on the stale end: of two concurrent callers exactly
// one observes resetApplied and the other a no-op.
func (a *Accountant) RolloverIfExpired(ctx context.Context, rec *subscription.Record, now time.Time) (bool, error) {
	def, err := a.catalog.Lookup(rec.PlanID)
	if err != nil {
		return false, err
	}
	if def.Type != plan.TypeOneTime {
		return false, nil
	}
	if rec.CurrentPeriodEnd == nil || !rec.CurrentPeriodEnd.Before(now) {
		return false, nil
	}

	staleEnd := *rec.CurrentPeriodEnd
	newStart := staleEnd
	newEnd := newStart.AddDate(0, 1, 0)
	for !newEnd.After(now) {
		newStart = newEnd
		newEnd = newStart.AddDate(0, 1, 0)
	}

	applied, err := a.store.ResetPeriod(ctx, rec.ID, staleEnd, newStart, newEnd)
	if err != nil {
		return false, err
	}
	if applied {
		metrics.RecordPeriodRollover()
		logger.Infof("rolled over one-time plan record %d: period now %s..%s", rec.ID, newStart.Format(time.RFC3339), newEnd.Format(time.RFC3339))
	}
	return applied, nil
}
