package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hireflow/internal/plan"
)

var (
	// ErrLimitReached means the conditional usage increment matched no row:
	// the counter is already at the limit.
	ErrLimitReached = errors.New("usage limit reached")
	// ErrNoBonus means the conditional bonus decrement matched no row: no
	// promotional units remain for that resource.
	ErrNoBonus = errors.New("no bonus units remaining")
)

const recordColumns = `id, recruiter_id, plan_id, status, trial_ends_at,
	current_period_start, current_period_end,
	cvs_used, jobs_used, matches_used,
	bonus_cv, bonus_job, bonus_match, bonus_period_start, bonus_period_end,
	created_at, updated_at`

type Repository struct {
	db      *sqlx.DB
	baseIDs []string
}

func NewRepository(db *sqlx.DB, catalog *plan.Catalog) *Repository {
	return &Repository{db: db, baseIDs: catalog.BaseIDs()}
}

// GetRecords returns every subscription row for a recruiter, most recent
// first, including expired and canceled ones. Resolution needs the full
// history to report "expired" instead of "no plan".
func (r *Repository) GetRecords(ctx context.Context, recruiterID int64) ([]Record, error) {
	records := []Record{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT `+recordColumns+`
		FROM subscription_records
		WHERE recruiter_id = $1
		ORDER BY created_at DESC
	`, recruiterID)
	return records, err
}

// GetActiveRecords returns rows with status active or trialing, most recent
// first.
func (r *Repository) GetActiveRecords(ctx context.Context, recruiterID int64) ([]Record, error) {
	records := []Record{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT `+recordColumns+`
		FROM subscription_records
		WHERE recruiter_id = $1
		  AND status IN ('active', 'trialing')
		ORDER BY created_at DESC
	`, recruiterID)
	return records, err
}

func (r *Repository) GetByID(ctx context.Context, recordID int64) (*Record, error) {
	rec := &Record{}
	err := r.db.GetContext(ctx, rec, `
		SELECT `+recordColumns+`
		FROM subscription_records
		WHERE id = $1
	`, recordID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpsertTrial provisions the signup trial. If the recruiter already holds a
// base-plan row of any status the existing newest one is returned unchanged,
// so repeated onboarding calls cannot grant a second trial. The base-plan id
// list comes from the catalog, so new base plans are covered automatically.
func (r *Repository) UpsertTrial(ctx context.Context, recruiterID int64, trialEndsAt time.Time) (*Record, error) {
	existing := &Record{}
	err := r.db.GetContext(ctx, existing, `
		SELECT `+recordColumns+`
		FROM subscription_records
		WHERE recruiter_id = $1
		  AND plan_id = ANY($2)
		ORDER BY created_at DESC
		LIMIT 1
	`, recruiterID, pq.Array(r.baseIDs))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	rec := &Record{}
	err = r.db.QueryRowxContext(ctx, `
		INSERT INTO subscription_records (recruiter_id, plan_id, status, trial_ends_at, current_period_start)
		VALUES ($1, 'trial', 'trialing', $2, NOW())
		RETURNING `+recordColumns+`
	`, recruiterID, trialEndsAt).StructScan(rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// InsertPlan creates a new subscription row for a purchased plan. The new row
// supersedes older rows of the same partition by created_at ordering.
func (r *Repository) InsertPlan(ctx context.Context, recruiterID int64, planID string, status Status, periodStart, periodEnd time.Time) (*Record, error) {
	rec := &Record{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO subscription_records (recruiter_id, plan_id, status, current_period_start, current_period_end)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+recordColumns+`
	`, recruiterID, planID, status, periodStart, periodEnd).StructScan(rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateStatus applies an external billing status transition. Only the
// billing event path writes status; the core never changes a plan's identity.
func (r *Repository) UpdateStatus(ctx context.Context, recordID int64, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscription_records
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, recordID, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePeriod refreshes a base-plan billing window after an external renewal
// event.
func (r *Repository) UpdatePeriod(ctx context.Context, recordID int64, periodStart, periodEnd time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscription_records
		SET current_period_start = $2,
		    current_period_end = $3,
		    cvs_used = 0,
		    jobs_used = 0,
		    matches_used = 0,
		    updated_at = NOW()
		WHERE id = $1
	`, recordID, periodStart, periodEnd)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GrantBonus sets the promotional allotment on a record, replacing whatever
// remained of a previous grant. Window may be open (both nil).
func (r *Repository) GrantBonus(ctx context.Context, recordID int64, cv, job, match int, windowStart, windowEnd *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscription_records
		SET bonus_cv = $2,
		    bonus_job = $3,
		    bonus_match = $4,
		    bonus_period_start = $5,
		    bonus_period_end = $6,
		    updated_at = NOW()
		WHERE id = $1
	`, recordID, cv, job, match, windowStart, windowEnd)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementUsage bumps the base-plan counter for a resource as a single
// conditional statement, so two concurrent requests can never both take the
// last unit. Returns the new count, or ErrLimitReached when the counter is
// already at the limit.
func (r *Repository) IncrementUsage(ctx context.Context, recordID int64, resource plan.Resource, limit plan.Quota) (int, error) {
	col, err := usageColumn(resource)
	if err != nil {
		return 0, err
	}

	var newCount int
	if bound, ok := limit.Limit(); ok {
		err = r.db.GetContext(ctx, &newCount, `
			UPDATE subscription_records
			SET `+col+` = `+col+` + 1, updated_at = NOW()
			WHERE id = $1 AND `+col+` < $2
			RETURNING `+col+`
		`, recordID, bound)
	} else {
		err = r.db.GetContext(ctx, &newCount, `
			UPDATE subscription_records
			SET `+col+` = `+col+` + 1, updated_at = NOW()
			WHERE id = $1
			RETURNING `+col+`
		`, recordID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrLimitReached
	}
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

// ConsumeBonus draws one promotional unit for a resource, again as a single
// conditional statement. Returns the remaining units, or ErrNoBonus when
// none remain.
func (r *Repository) ConsumeBonus(ctx context.Context, recordID int64, resource plan.Resource) (int, error) {
	col, err := bonusColumn(resource)
	if err != nil {
		return 0, err
	}

	var remaining int
	err = r.db.GetContext(ctx, &remaining, `
		UPDATE subscription_records
		SET `+col+` = `+col+` - 1, updated_at = NOW()
		WHERE id = $1 AND `+col+` > 0
		RETURNING `+col+`
	`, recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoBonus
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// ResetPeriod zeroes the usage counters and advances the period window,
// keyed on the stale period end so that exactly one of two concurrent
// callers performs the reset. Returns whether this call applied it.
func (r *Repository) ResetPeriod(ctx context.Context, recordID int64, staleEnd, newStart, newEnd time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscription_records
		SET cvs_used = 0,
		    jobs_used = 0,
		    matches_used = 0,
		    current_period_start = $3,
		    current_period_end = $4,
		    updated_at = NOW()
		WHERE id = $1 AND current_period_end = $2
	`, recordID, staleEnd, newStart, newEnd)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func usageColumn(resource plan.Resource) (string, error) {
	switch resource {
	case plan.ResourceCV:
		return "cvs_used", nil
	case plan.ResourceJob:
		return "jobs_used", nil
	case plan.ResourceMatch:
		return "matches_used", nil
	}
	return "", errors.New("unknown resource: " + string(resource))
}

func bonusColumn(resource plan.Resource) (string, error) {
	switch resource {
	case plan.ResourceCV:
		return "bonus_cv", nil
	case plan.ResourceJob:
		return "bonus_job", nil
	case plan.ResourceMatch:
		return "bonus_match", nil
	}
	return "", errors.New("unknown resource: " + string(resource))
}
