package job

import (
	"context"
	"time"

	"hireflow/internal/entitlement"
	"hireflow/internal/logger"
	"hireflow/internal/metrics"
)

// Gate is the admission surface jobs go through before any write.
type Gate interface {
	Admit(ctx context.Context, recruiterID int64, action entitlement.Action, now time.Time) (entitlement.Decision, error)
	Commit(ctx context.Context, recruiterID int64, action entitlement.Action, now time.Time) (int, error)
}

type Service interface {
	Create(ctx context.Context, recruiterID int64, req CreateJobRequest) (*Job, entitlement.Decision, error)
	List(ctx context.Context, recruiterID int64) ([]Job, error)
	Archive(ctx context.Context, id, recruiterID int64) error
}

type service struct {
	repo Repository
	gate Gate
}

func NewService(repo Repository, gate Gate) Service {
	return &service{repo: repo, gate: gate}
}

// Create gates the posting against the recruiter's job quota, persists it and
// then commits the consumed unit. The gate counts open postings live, so quota
// freed by archiving is immediately available again.
func (s *service) Create(ctx context.Context, recruiterID int64, req CreateJobRequest) (*Job, entitlement.Decision, error) {
	now := time.Now()

	decision, err := s.gate.Admit(ctx, recruiterID, entitlement.ActionJobCreation, now)
	if err != nil {
		return nil, entitlement.Decision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	j, err := s.repo.Create(ctx, recruiterID, req.Title, req.Description)
	if err != nil {
		return nil, decision, err
	}

	// The posting already exists; a failed audit increment must not undo it.
	if _, err := s.gate.Commit(ctx, recruiterID, entitlement.ActionJobCreation, now); err != nil {
		logger.Errorf("failed to commit job usage for recruiter %d: %v", recruiterID, err)
	}

	metrics.RecordJobCreated()
	return j, decision, nil
}

func (s *service) List(ctx context.Context, recruiterID int64) ([]Job, error) {
	return s.repo.ListByRecruiter(ctx, recruiterID)
}

func (s *service) Archive(ctx context.Context, id, recruiterID int64) error {
	return s.repo.Archive(ctx, id, recruiterID)
}
