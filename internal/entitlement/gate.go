package entitlement

import "hireflow/internal/plan"

// Action is a quota-consuming operation a recruiter attempts.
type Action string

const (
	ActionCVAnalysis     Action = "cv_analysis"
	ActionJobCreation    Action = "job_creation"
	ActionMatchExecution Action = "match_execution"
)

func (a Action) Resource() plan.Resource {
	switch a {
	case ActionCVAnalysis:
		return plan.ResourceCV
	case ActionJobCreation:
		return plan.ResourceJob
	case ActionMatchExecution:
		return plan.ResourceMatch
	}
	return ""
}

// Reason is the machine-readable deny reason surfaced to the frontend.
type Reason string

const (
	ReasonQuotaExceeded        Reason = "quota_exceeded"
	ReasonSubscriptionInactive Reason = "subscription_inactive"
)

// Source says which pool an allowed action draws from.
type Source string

const (
	SourceBase  Source = "base"
	SourceBonus Source = "bonus"
)

type Decision struct {
	Allowed  bool          `json:"allowed"`
	Reason   Reason        `json:"reason,omitempty"`
	Source   Source        `json:"source,omitempty"`
	Resource plan.Resource `json:"resource"`
}

// Check gates an action against the resolved plan. Base-plan quota is
// preferred; bonus units are drawn only once base quota is unusable or
// exhausted, so upgrade prompts reflect base exhaustion before bonus
// consumption starts. An unlimited base limit always allows while the
// subscription is active. The gate is the single place this priority is
// decided; callers must not re-derive it.
func Check(ep EffectivePlan, action Action) Decision {
	resource := action.Resource()
	limit := ep.LimitFor(resource)
	used := ep.UsedFor(resource)

	if ep.IsSubscriptionActive && limit.Allows(used) {
		return Decision{Allowed: true, Source: SourceBase, Resource: resource}
	}
	if ep.Bonus.ActiveFor(resource) {
		return Decision{Allowed: true, Source: SourceBonus, Resource: resource}
	}
	if !ep.IsSubscriptionActive {
		return Decision{Reason: ReasonSubscriptionInactive, Resource: resource}
	}
	return Decision{Reason: ReasonQuotaExceeded, Resource: resource}
}
