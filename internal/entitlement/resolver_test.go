package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/internal/plan"
	"hireflow/internal/subscription"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func trialRecord(id int64, trialEndsAt time.Time, createdAt time.Time) subscription.Record {
	return subscription.Record{
		ID:          id,
		RecruiterID: 1,
		PlanID:      "trial",
		Status:      subscription.StatusTrialing,
		TrialEndsAt: timePtr(trialEndsAt),
		CreatedAt:   createdAt,
	}
}

func monthlyRecord(id int64, periodEnd time.Time, createdAt time.Time) subscription.Record {
	return subscription.Record{
		ID:                 id,
		RecruiterID:        1,
		PlanID:             "profesional",
		Status:             subscription.StatusActive,
		CurrentPeriodStart: timePtr(periodEnd.AddDate(0, -1, 0)),
		CurrentPeriodEnd:   timePtr(periodEnd),
		CreatedAt:          createdAt,
	}
}

func oneTimeRecord(id int64, periodEnd time.Time, createdAt time.Time) subscription.Record {
	return subscription.Record{
		ID:                 id,
		RecruiterID:        1,
		PlanID:             "credits-20",
		Status:             subscription.StatusActive,
		CurrentPeriodStart: timePtr(periodEnd.AddDate(0, -1, 0)),
		CurrentPeriodEnd:   timePtr(periodEnd),
		CreatedAt:          createdAt,
	}
}

func TestResolve_NoRecords(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	ep := r.Resolve(nil, 0, now)

	assert.False(t, ep.IsSubscriptionActive)
	assert.False(t, ep.IsBasePlanActive)
	assert.Nil(t, ep.Plan)
	assert.False(t, ep.CVLimit.Allows(0))
	assert.False(t, ep.JobLimit.Allows(0))
	assert.False(t, ep.MatchLimit.Allows(0))
	assert.False(t, ep.Bonus.Active)
}

func TestResolve_ExpiredTrial(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	records := []subscription.Record{
		trialRecord(1, now.Add(-time.Hour), now.AddDate(0, 0, -15)),
	}

	ep := r.Resolve(records, 0, now)

	require.NotNil(t, ep.Plan)
	assert.Equal(t, "trial", ep.Plan.ID)
	assert.False(t, ep.IsSubscriptionActive)
	assert.False(t, ep.IsBasePlanActive)

	d := Check(ep, ActionCVAnalysis)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSubscriptionInactive, d.Reason)
}

func TestResolve_ActiveTrial(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	records := []subscription.Record{
		trialRecord(1, now.AddDate(0, 0, 7), now.AddDate(0, 0, -7)),
	}

	ep := r.Resolve(records, 0, now)

	assert.True(t, ep.IsSubscriptionActive)
	assert.True(t, ep.IsBasePlanActive)
	require.NotNil(t, ep.PeriodEndsAt)
	assert.Equal(t, *records[0].TrialEndsAt, *ep.PeriodEndsAt)
}

func TestResolve_MonthlyBeatsOneTime(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	records := []subscription.Record{
		oneTimeRecord(2, now.AddDate(0, 0, 20), now.Add(-time.Hour)),
		monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, 0, -20)),
	}

	ep := r.Resolve(records, 0, now)

	require.NotNil(t, ep.Plan)
	assert.Equal(t, "profesional", ep.Plan.ID)
	assert.True(t, ep.IsSubscriptionActive)
	assert.True(t, ep.IsBasePlanActive)
}

func TestResolve_OneTimeWhenBaseExpired(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	records := []subscription.Record{
		monthlyRecord(1, now.AddDate(0, 0, -5), now.AddDate(0, -2, 0)),
		oneTimeRecord(2, now.AddDate(0, 0, 20), now.AddDate(0, 0, -3)),
	}

	ep := r.Resolve(records, 0, now)

	require.NotNil(t, ep.Plan)
	assert.Equal(t, "credits-20", ep.Plan.ID)
	assert.True(t, ep.IsSubscriptionActive)
	assert.False(t, ep.IsBasePlanActive)
}

func TestResolve_OneTimeTakesOverAfterTrialExpiry(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	records := []subscription.Record{
		trialRecord(1, now.Add(-time.Hour), now.AddDate(0, 0, -15)),
		oneTimeRecord(2, now.AddDate(0, 0, 25), now.Add(-30*time.Minute)),
	}

	ep := r.Resolve(records, 0, now)

	require.NotNil(t, ep.Plan)
	assert.Equal(t, "credits-20", ep.Plan.ID)
	assert.True(t, ep.IsSubscriptionActive)
	assert.False(t, ep.IsBasePlanActive)
}

func TestResolve_ExpiredBaseReportedOverExpiredOneTime(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	records := []subscription.Record{
		monthlyRecord(1, now.AddDate(0, 0, -10), now.AddDate(0, -2, 0)),
		oneTimeRecord(2, now.AddDate(0, 0, -5), now.AddDate(0, -1, 0)),
	}

	ep := r.Resolve(records, 0, now)

	require.NotNil(t, ep.Plan)
	assert.Equal(t, "profesional", ep.Plan.ID)
	assert.False(t, ep.IsSubscriptionActive)
}

func TestResolve_LatestWinsWithinPartition(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	older := monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, -1, 0))
	older.CVsUsed = 40
	newer := monthlyRecord(2, now.AddDate(0, 0, 25), now.AddDate(0, 0, -1))
	newer.CVsUsed = 3

	ep := r.Resolve([]subscription.Record{older, newer}, 0, now)

	assert.Equal(t, int64(2), ep.RecordID)
	assert.Equal(t, 3, ep.CVsUsed)
}

func TestResolve_UnknownPlanSkipped(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	ghost := subscription.Record{
		ID:        9,
		PlanID:    "legacy-gold",
		Status:    subscription.StatusActive,
		CreatedAt: now,
	}
	valid := monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, 0, -5))

	ep := r.Resolve([]subscription.Record{ghost, valid}, 0, now)

	require.NotNil(t, ep.Plan)
	assert.Equal(t, "profesional", ep.Plan.ID)
	assert.True(t, ep.IsSubscriptionActive)
}

func TestResolve_MalformedTrialSkipped(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	malformed := subscription.Record{
		ID:        3,
		PlanID:    "trial",
		Status:    subscription.StatusTrialing,
		CreatedAt: now,
	}

	ep := r.Resolve([]subscription.Record{malformed}, 0, now)

	assert.Nil(t, ep.Plan)
	assert.False(t, ep.IsSubscriptionActive)
}

func TestResolve_PausedRecordNotUsable(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	rec := monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, 0, -5))
	rec.Status = subscription.StatusPaused

	ep := r.Resolve([]subscription.Record{rec}, 0, now)

	require.NotNil(t, ep.Plan)
	assert.False(t, ep.IsSubscriptionActive)
}

func TestResolve_LiveJobCountSupersedesStoredCounter(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	rec := monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, 0, -5))
	rec.JobsUsed = 3 // stored counter at limit, but two postings were deleted

	ep := r.Resolve([]subscription.Record{rec}, 1, now)

	assert.Equal(t, 1, ep.JobsUsed)
	d := Check(ep, ActionJobCreation)
	assert.True(t, d.Allowed)
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	records := []subscription.Record{
		oneTimeRecord(2, now.AddDate(0, 0, 20), now.Add(-time.Hour)),
		monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, 0, -20)),
	}
	snapshot := make([]subscription.Record, len(records))
	copy(snapshot, records)

	first := r.Resolve(records, 2, now)
	second := r.Resolve(records, 2, now)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, records, "input slice must not be mutated")
}

func TestResolve_MonthlyLimitsCopied(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	rec := monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, 0, -5))
	rec.CVsUsed = 49
	rec.MatchesUsed = 12

	ep := r.Resolve([]subscription.Record{rec}, 0, now)

	assert.Equal(t, 49, ep.CVsUsed)
	assert.Equal(t, 12, ep.MatchesUsed)
	assert.True(t, ep.CVLimit.Allows(49))
	assert.False(t, ep.CVLimit.Allows(50))
	require.NotNil(t, ep.PeriodEndsAt)
	assert.Equal(t, *rec.CurrentPeriodEnd, *ep.PeriodEndsAt)
}

func TestResolve_EnterpriseUnlimited(t *testing.T) {
	r := NewResolver(plan.Default())
	now := time.Now()

	rec := monthlyRecord(1, now.AddDate(0, 0, 10), now.AddDate(0, 0, -5))
	rec.PlanID = "enterprise"
	rec.CVsUsed = 100000

	ep := r.Resolve([]subscription.Record{rec}, 500, now)

	assert.True(t, ep.CVLimit.IsUnlimited())
	assert.True(t, Check(ep, ActionCVAnalysis).Allowed)
	assert.True(t, Check(ep, ActionJobCreation).Allowed)
	assert.True(t, Check(ep, ActionMatchExecution).Allowed)
}
