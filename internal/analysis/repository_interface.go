package analysis

import "context"

type Repository interface {
	Create(ctx context.Context, a *CVAnalysis) (*CVAnalysis, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]CVAnalysis, error)
	ListByJob(ctx context.Context, recruiterID, jobID int64) ([]CVAnalysis, error)
}
