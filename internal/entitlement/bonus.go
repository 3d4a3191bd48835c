package entitlement

import (
	"time"

	"hireflow/internal/subscription"
)

// computeBonus evaluates the promotional overlay over the surviving base and
// one-time rows. Bonuses on superseded rows were already discarded by the
// latest-wins partition; between the two survivors the newer grant wins.
// Activity is independent of the base plan's state.
func computeBonus(base, oneTime *subscription.Record, now time.Time) BonusState {
	candidates := make([]*subscription.Record, 0, 2)
	if base != nil {
		candidates = append(candidates, base)
	}
	if oneTime != nil {
		candidates = append(candidates, oneTime)
	}
	if len(candidates) == 2 && candidates[1].CreatedAt.After(candidates[0].CreatedAt) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, rec := range candidates {
		if rec.BonusCV <= 0 && rec.BonusJob <= 0 && rec.BonusMatch <= 0 {
			continue
		}
		if !bonusWindowOpen(rec, now) {
			continue
		}
		return BonusState{
			Active:         true,
			RecordID:       rec.ID,
			CVRemaining:    max(rec.BonusCV, 0),
			JobRemaining:   max(rec.BonusJob, 0),
			MatchRemaining: max(rec.BonusMatch, 0),
		}
	}
	return BonusState{}
}

// bonusWindowOpen: no window means always usable; otherwise now must fall
// within the configured bound(s).
func bonusWindowOpen(rec *subscription.Record, now time.Time) bool {
	if rec.BonusPeriodStart == nil && rec.BonusPeriodEnd == nil {
		return true
	}
	if rec.BonusPeriodStart != nil && now.Before(*rec.BonusPeriodStart) {
		return false
	}
	if rec.BonusPeriodEnd != nil && now.After(*rec.BonusPeriodEnd) {
		return false
	}
	return true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
