package analysis

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *CVAnalysis) (*CVAnalysis, error) {
	query := `
		INSERT INTO cv_analyses (recruiter_id, job_id, candidate_name, summary, score, skills)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, recruiter_id, job_id, candidate_name, summary, score, skills, created_at
	`

	var created CVAnalysis
	err := r.db.GetContext(ctx, &created, query,
		a.RecruiterID, a.JobID, a.CandidateName, a.Summary, a.Score, a.Skills)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) ListByRecruiter(ctx context.Context, recruiterID int64) ([]CVAnalysis, error) {
	query := `
		SELECT id, recruiter_id, job_id, candidate_name, summary, score, skills, created_at
		FROM cv_analyses
		WHERE recruiter_id = $1
		ORDER BY created_at DESC
	`

	var analyses []CVAnalysis
	err := r.db.SelectContext(ctx, &analyses, query, recruiterID)
	if err != nil {
		return nil, err
	}

	return analyses, nil
}

func (r *repository) ListByJob(ctx context.Context, recruiterID, jobID int64) ([]CVAnalysis, error) {
	query := `
		SELECT id, recruiter_id, job_id, candidate_name, summary, score, skills, created_at
		FROM cv_analyses
		WHERE recruiter_id = $1 AND job_id = $2
		ORDER BY score DESC, created_at DESC
	`

	var analyses []CVAnalysis
	err := r.db.SelectContext(ctx, &analyses, query, recruiterID, jobID)
	if err != nil {
		return nil, err
	}

	return analyses, nil
}
