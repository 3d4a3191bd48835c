package analysis

import (
	"context"
	"errors"

	"hireflow/internal/job"
)

// Provider scores CVs and ranks candidates. Implementations may call an
// external model; the default heuristic provider works offline.
type Provider interface {
	AnalyzeCV(ctx context.Context, params AnalyzeCVParams) (*CVResult, error)
	MatchCandidates(ctx context.Context, params MatchParams) ([]CandidateMatch, error)
}

type AnalyzeCVParams struct {
	CandidateName string
	CVText        string
	Job           *job.Job // optional, sharpens the score when present
}

type MatchParams struct {
	Job        *job.Job
	Candidates []CVAnalysis
	MaxResults int
}

type CVResult struct {
	Summary string
	Score   int // 0..100
	Skills  []string
}

var (
	// ErrProviderUnavailable indicates a transient provider failure.
	ErrProviderUnavailable = errors.New("analysis provider unavailable")
	// ErrUnreadableCV indicates the CV text could not be analyzed.
	ErrUnreadableCV = errors.New("cv text could not be analyzed")
)
