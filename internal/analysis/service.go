package analysis

import (
	"context"
	"strings"
	"time"

	"hireflow/internal/entitlement"
	"hireflow/internal/job"
	"hireflow/internal/logger"
	"hireflow/internal/metrics"
)

// Gate is the admission surface analyses go through before any provider call.
type Gate interface {
	Admit(ctx context.Context, recruiterID int64, action entitlement.Action, now time.Time) (entitlement.Decision, error)
	Commit(ctx context.Context, recruiterID int64, action entitlement.Action, now time.Time) (int, error)
}

// JobFinder resolves postings referenced by analyses and matches.
type JobFinder interface {
	GetByID(ctx context.Context, id int64) (*job.Job, error)
}

type Service interface {
	AnalyzeCV(ctx context.Context, recruiterID int64, req AnalyzeCVRequest) (*CVAnalysis, entitlement.Decision, error)
	MatchCandidates(ctx context.Context, recruiterID int64, req MatchRequest) ([]CandidateMatch, entitlement.Decision, error)
	List(ctx context.Context, recruiterID int64) ([]CVAnalysis, error)
}

type service struct {
	repo     Repository
	provider Provider
	gate     Gate
	jobs     JobFinder
}

func NewService(repo Repository, provider Provider, gate Gate, jobs JobFinder) Service {
	return &service{
		repo:     repo,
		provider: provider,
		gate:     gate,
		jobs:     jobs,
	}
}

// AnalyzeCV admits the request against the CV quota, runs the provider and
// persists the result. The unit is committed only after the analysis
// succeeded; a provider failure costs the recruiter nothing.
func (s *service) AnalyzeCV(ctx context.Context, recruiterID int64, req AnalyzeCVRequest) (*CVAnalysis, entitlement.Decision, error) {
	now := time.Now()

	decision, err := s.gate.Admit(ctx, recruiterID, entitlement.ActionCVAnalysis, now)
	if err != nil {
		return nil, entitlement.Decision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	var j *job.Job
	if req.JobID != nil {
		j, err = s.findOwnedJob(ctx, recruiterID, *req.JobID)
		if err != nil {
			return nil, decision, err
		}
	}

	result, err := s.provider.AnalyzeCV(ctx, AnalyzeCVParams{
		CandidateName: req.CandidateName,
		CVText:        req.CVText,
		Job:           j,
	})
	if err != nil {
		return nil, decision, err
	}

	created, err := s.repo.Create(ctx, &CVAnalysis{
		RecruiterID:   recruiterID,
		JobID:         req.JobID,
		CandidateName: req.CandidateName,
		Summary:       result.Summary,
		Score:         result.Score,
		Skills:        strings.Join(result.Skills, ", "),
	})
	if err != nil {
		return nil, decision, err
	}

	if _, err := s.gate.Commit(ctx, recruiterID, entitlement.ActionCVAnalysis, now); err != nil {
		logger.Errorf("failed to commit cv usage for recruiter %d: %v", recruiterID, err)
	}

	metrics.RecordAnalysis("cv")
	return created, decision, nil
}

// MatchCandidates ranks the job's analyzed CVs. One execution consumes one
// match unit regardless of candidate count.
func (s *service) MatchCandidates(ctx context.Context, recruiterID int64, req MatchRequest) ([]CandidateMatch, entitlement.Decision, error) {
	now := time.Now()

	decision, err := s.gate.Admit(ctx, recruiterID, entitlement.ActionMatchExecution, now)
	if err != nil {
		return nil, entitlement.Decision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	j, err := s.findOwnedJob(ctx, recruiterID, req.JobID)
	if err != nil {
		return nil, decision, err
	}

	candidates, err := s.repo.ListByJob(ctx, recruiterID, req.JobID)
	if err != nil {
		return nil, decision, err
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 5
	}

	matches, err := s.provider.MatchCandidates(ctx, MatchParams{
		Job:        j,
		Candidates: candidates,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, decision, err
	}

	if _, err := s.gate.Commit(ctx, recruiterID, entitlement.ActionMatchExecution, now); err != nil {
		logger.Errorf("failed to commit match usage for recruiter %d: %v", recruiterID, err)
	}

	metrics.RecordAnalysis("match")
	return matches, decision, nil
}

func (s *service) List(ctx context.Context, recruiterID int64) ([]CVAnalysis, error) {
	return s.repo.ListByRecruiter(ctx, recruiterID)
}

// findOwnedJob hides other recruiters' postings behind not-found.
func (s *service) findOwnedJob(ctx context.Context, recruiterID, jobID int64) (*job.Job, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.RecruiterID != recruiterID {
		return nil, job.ErrJobNotFound
	}
	return j, nil
}
