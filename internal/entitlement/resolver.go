package entitlement

import (
	"errors"
	"sort"
	"time"

	"hireflow/internal/logger"
	"hireflow/internal/plan"
	"hireflow/internal/subscription"
)

// Resolver reconciles a recruiter's possibly overlapping subscription rows
// into a single EffectivePlan. It is pure: same records and same now always
// produce the same result, and the input slice is never mutated.
type Resolver struct {
	catalog *plan.Catalog
}

func NewResolver(catalog *plan.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve picks the authoritative plan and the limits to enforce.
//
// jobCountNow is the live count of non-archived job postings; it supersedes
// the stored job counter because postings can be deleted.
func (r *Resolver) Resolve(records []subscription.Record, jobCountNow int, now time.Time) EffectivePlan {
	base, baseDef, oneTime, oneTimeDef := r.partition(records)

	var (
		authoritative *subscription.Record
		authDef       plan.Definition
		active        bool
	)
	switch {
	case base != nil && r.usable(base, baseDef, now):
		authoritative, authDef, active = base, baseDef, true
	case oneTime != nil && r.usable(oneTime, oneTimeDef, now):
		authoritative, authDef, active = oneTime, oneTimeDef, true
	case base != nil:
		// Expired or suspended base plan stays reported so the UI can show
		// "expired" instead of "no plan".
		authoritative, authDef, active = base, baseDef, false
	case oneTime != nil:
		authoritative, authDef, active = oneTime, oneTimeDef, false
	}

	ep := EffectivePlan{
		CVLimit:    plan.Limited(0),
		JobLimit:   plan.Limited(0),
		MatchLimit: plan.Limited(0),
		JobsUsed:   jobCountNow,
	}

	if authoritative != nil {
		def := authDef
		ep.Plan = &def
		ep.RecordID = authoritative.ID
		ep.IsSubscriptionActive = active
		ep.IsBasePlanActive = base != nil && r.usable(base, baseDef, now)

		// Trial expiry is absolute: no status value overrides it.
		if authDef.Type == plan.TypeTrial && authoritative.TrialEndsAt != nil && now.After(*authoritative.TrialEndsAt) {
			ep.IsSubscriptionActive = false
			ep.IsBasePlanActive = false
		}

		ep.CVLimit = authDef.CVLimit
		ep.JobLimit = authDef.JobLimit
		ep.MatchLimit = authDef.MatchLimit
		ep.CVsUsed = authoritative.CVsUsed
		ep.MatchesUsed = authoritative.MatchesUsed
		ep.PeriodEndsAt = periodEnd(authoritative, authDef)
	}

	ep.Bonus = computeBonus(base, oneTime, now)
	return ep
}

// partition splits records into base-plan and one-time rows, drops rows whose
// plan id fails catalog lookup or whose trial carries neither expiry nor
// period end, and keeps only the most recently created row per partition.
func (r *Resolver) partition(records []subscription.Record) (base *subscription.Record, baseDef plan.Definition, oneTime *subscription.Record, oneTimeDef plan.Definition) {
	sorted := make([]subscription.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for i := range sorted {
		rec := &sorted[i]
		def, err := r.catalog.Lookup(rec.PlanID)
		if err != nil {
			if errors.Is(err, plan.ErrUnknownPlan) {
				logger.Errorf("subscription record %d references unknown plan %q, skipping", rec.ID, rec.PlanID)
				continue
			}
			logger.Errorf("catalog lookup for record %d failed: %v", rec.ID, err)
			continue
		}
		if def.Type == plan.TypeTrial && rec.TrialEndsAt == nil && rec.CurrentPeriodEnd == nil {
			logger.Errorf("trial record %d has neither trial_ends_at nor current_period_end, skipping", rec.ID)
			continue
		}
		if def.Type.IsBase() {
			if base == nil {
				base, baseDef = rec, def
			}
		} else {
			if oneTime == nil {
				oneTime, oneTimeDef = rec, def
			}
		}
		if base != nil && oneTime != nil {
			break
		}
	}
	return base, baseDef, oneTime, oneTimeDef
}

// usable is active-by-date plus the trial hard cutoff, so an expired trial
// lets an active one-time pack take over as authoritative.
func (r *Resolver) usable(rec *subscription.Record, def plan.Definition, now time.Time) bool {
	if rec.Status != subscription.StatusActive && rec.Status != subscription.StatusTrialing {
		return false
	}
	if def.Type == plan.TypeTrial && rec.TrialEndsAt != nil && now.After(*rec.TrialEndsAt) {
		return false
	}
	if rec.CurrentPeriodEnd == nil {
		// Only a trial may be date-unbounded; anything else without a period
		// end is malformed and must not grant access.
		return def.Type == plan.TypeTrial
	}
	return !now.After(*rec.CurrentPeriodEnd)
}

func periodEnd(rec *subscription.Record, def plan.Definition) *time.Time {
	if def.Type == plan.TypeTrial && rec.TrialEndsAt != nil {
		return rec.TrialEndsAt
	}
	return rec.CurrentPeriodEnd
}
