package billing

import "time"

type EventType string

const (
	EventPlanPurchased EventType = "plan_purchased"
	EventStatusChanged EventType = "status_changed"
	EventPeriodRenewed EventType = "period_renewed"
	EventBonusGranted  EventType = "bonus_granted"
)

// Event is the payload the external billing system posts after processing a
// payment. This service never talks to the payment provider itself.
type Event struct {
	Type        EventType   `json:"type" binding:"required"`
	RecruiterID int64       `json:"recruiter_id" binding:"required"`
	PlanID      string      `json:"plan_id"`
	Status      string      `json:"status"`
	PeriodStart *time.Time  `json:"period_start"`
	PeriodEnd   *time.Time  `json:"period_end"`
	Bonus       *BonusGrant `json:"bonus"`
}

type BonusGrant struct {
	CV          int        `json:"cv"`
	Job         int        `json:"job"`
	Match       int        `json:"match"`
	WindowStart *time.Time `json:"window_start"`
	WindowEnd   *time.Time `json:"window_end"`
}
