package email

import (
	"context"

	"hireflow/internal/logger"
	"hireflow/internal/plan"
	"hireflow/internal/recruiter"
)

// Directory resolves a recruiter id to a deliverable address.
type Directory interface {
	FindByID(ctx context.Context, recruiterID int64) (*recruiter.Recruiter, error)
}

// Notifier glues the domain services to the mail queue: it looks up the
// recruiter and queues the matching notice. Notification failures are logged
// and swallowed; the triggering operation must never fail because of them.
type Notifier struct {
	emails     *Service
	recruiters Directory
}

func NewNotifier(emails *Service, recruiters Directory) *Notifier {
	return &Notifier{emails: emails, recruiters: recruiters}
}

func (n *Notifier) QuotaExhausted(ctx context.Context, recruiterID int64, resource plan.Resource) {
	rec, err := n.recruiters.FindByID(ctx, recruiterID)
	if err != nil {
		logger.Errorf("quota notice skipped, recruiter %d lookup failed: %v", recruiterID, err)
		return
	}
	n.emails.SendQuotaExhausted(ctx, rec.Email, rec.CompanyName, string(resource))
}

func (n *Notifier) PlanPurchased(ctx context.Context, recruiterID int64, planName string) {
	rec, err := n.recruiters.FindByID(ctx, recruiterID)
	if err != nil {
		logger.Errorf("purchase notice skipped, recruiter %d lookup failed: %v", recruiterID, err)
		return
	}
	n.emails.SendPlanPurchased(ctx, rec.Email, rec.CompanyName, planName)
}
