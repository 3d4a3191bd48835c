package analysis

import "time"

type CVAnalysis struct {
	ID            int64     `db:"id" json:"id"`
	RecruiterID   int64     `db:"recruiter_id" json:"recruiter_id"`
	JobID         *int64    `db:"job_id" json:"job_id,omitempty"`
	CandidateName string    `db:"candidate_name" json:"candidate_name"`
	Summary       string    `db:"summary" json:"summary"`
	Score         int       `db:"score" json:"score"`
	Skills        string    `db:"skills" json:"skills"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type AnalyzeCVRequest struct {
	JobID         *int64 `json:"job_id"`
	CandidateName string `json:"candidate_name" binding:"required,min=2,max=160"`
	CVText        string `json:"cv_text" binding:"required,min=20"`
}

type MatchRequest struct {
	JobID      int64 `json:"job_id" binding:"required"`
	MaxResults int   `json:"max_results" binding:"omitempty,min=1,max=50"`
}

// CandidateMatch ranks a previously analyzed CV against a job posting.
type CandidateMatch struct {
	AnalysisID    int64   `json:"analysis_id"`
	CandidateName string  `json:"candidate_name"`
	Score         float64 `json:"score"`
	Explanation   string  `json:"explanation"`
}
