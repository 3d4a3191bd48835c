package entitlement

import (
	"time"

	"hireflow/internal/plan"
)

// EffectivePlan is the resolved, read-only view of what a recruiter may do
// right now: which plan governs access, whether it is usable, the limits and
// usage to enforce, and the promotional bonus overlay. It is derived on every
// request and never persisted.
type EffectivePlan struct {
	Plan     *plan.Definition `json:"plan,omitempty"`
	RecordID int64            `json:"-"`

	IsSubscriptionActive bool `json:"is_subscription_active"`
	IsBasePlanActive     bool `json:"is_base_plan_active"`

	CVLimit    plan.Quota `json:"cv_limit"`
	JobLimit   plan.Quota `json:"job_limit"`
	MatchLimit plan.Quota `json:"match_limit"`

	CVsUsed     int `json:"cvs_used"`
	JobsUsed    int `json:"jobs_used"`
	MatchesUsed int `json:"matches_used"`

	PeriodEndsAt *time.Time `json:"period_ends_at,omitempty"`

	Bonus BonusState `json:"bonus"`
}

// BonusState is the promotional overlay, computed independently of the base
// plan's state so remaining bonus units can keep a recruiter able to act
// while the base plan is expired.
type BonusState struct {
	Active   bool  `json:"active"`
	RecordID int64 `json:"-"`

	CVRemaining    int `json:"cv_remaining"`
	JobRemaining   int `json:"job_remaining"`
	MatchRemaining int `json:"match_remaining"`
}

func (ep EffectivePlan) LimitFor(r plan.Resource) plan.Quota {
	switch r {
	case plan.ResourceCV:
		return ep.CVLimit
	case plan.ResourceJob:
		return ep.JobLimit
	case plan.ResourceMatch:
		return ep.MatchLimit
	}
	return plan.Limited(0)
}

func (ep EffectivePlan) UsedFor(r plan.Resource) int {
	switch r {
	case plan.ResourceCV:
		return ep.CVsUsed
	case plan.ResourceJob:
		return ep.JobsUsed
	case plan.ResourceMatch:
		return ep.MatchesUsed
	}
	return 0
}

func (b BonusState) RemainingFor(r plan.Resource) int {
	switch r {
	case plan.ResourceCV:
		return b.CVRemaining
	case plan.ResourceJob:
		return b.JobRemaining
	case plan.ResourceMatch:
		return b.MatchRemaining
	}
	return 0
}

// ActiveFor reports whether the bonus can fund one more unit of the given
// resource. A bonus exhausted for CVs can still be active for jobs.
func (b BonusState) ActiveFor(r plan.Resource) bool {
	return b.Active && b.RemainingFor(r) > 0
}
