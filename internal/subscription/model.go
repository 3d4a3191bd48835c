package subscription

import "time"

type Status string

const (
	StatusTrialing Status = "trialing"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusCanceled Status = "canceled"
)

// Record is one subscription row for a recruiter. A recruiter normally holds
// at most one base-plan row and one one-time row; historical duplicates may
// exist and resolution picks the most recent by created_at. Rows are never
// deleted, only superseded, so billing history stays available for support.
//
// Bonus columns hold the REMAINING promotional units per resource; granting a
// bonus sets them, consumption decrements them in place.
type Record struct {
	ID          int64  `db:"id" json:"id"`
	RecruiterID int64  `db:"recruiter_id" json:"recruiter_id"`
	PlanID      string `db:"plan_id" json:"plan_id"`
	Status      Status `db:"status" json:"status"`

	TrialEndsAt        *time.Time `db:"trial_ends_at" json:"trial_ends_at,omitempty"`
	CurrentPeriodStart *time.Time `db:"current_period_start" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `db:"current_period_end" json:"current_period_end,omitempty"`

	CVsUsed     int `db:"cvs_used" json:"cvs_used"`
	JobsUsed    int `db:"jobs_used" json:"jobs_used"`
	MatchesUsed int `db:"matches_used" json:"matches_used"`

	BonusCV          int        `db:"bonus_cv" json:"bonus_cv"`
	BonusJob         int        `db:"bonus_job" json:"bonus_job"`
	BonusMatch       int        `db:"bonus_match" json:"bonus_match"`
	BonusPeriodStart *time.Time `db:"bonus_period_start" json:"bonus_period_start,omitempty"`
	BonusPeriodEnd   *time.Time `db:"bonus_period_end" json:"bonus_period_end,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
