package job

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrJobNotFound = errors.New("job not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, recruiterID int64, title, description string) (*Job, error) {
	query := `
		INSERT INTO job_postings (recruiter_id, title, description, status)
		VALUES ($1, $2, $3, 'open')
		RETURNING id, recruiter_id, title, description, status, created_at, updated_at
	`

	var j Job
	err := r.db.GetContext(ctx, &j, query, recruiterID, title, description)
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Job, error) {
	query := `
		SELECT id, recruiter_id, title, description, status, created_at, updated_at
		FROM job_postings
		WHERE id = $1
	`

	var j Job
	err := r.db.GetContext(ctx, &j, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *repository) ListByRecruiter(ctx context.Context, recruiterID int64) ([]Job, error) {
	query := `
		SELECT id, recruiter_id, title, description, status, created_at, updated_at
		FROM job_postings
		WHERE recruiter_id = $1
		ORDER BY created_at DESC
	`

	var jobs []Job
	err := r.db.SelectContext(ctx, &jobs, query, recruiterID)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *repository) Archive(ctx context.Context, id, recruiterID int64) error {
	query := `
		UPDATE job_postings
		SET status = 'archived', updated_at = NOW()
		WHERE id = $1 AND recruiter_id = $2 AND status = 'open'
	`

	res, err := r.db.ExecContext(ctx, query, id, recruiterID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// CountActiveByRecruiter is the live posting count the admission gate trusts
// over the stored usage counter.
func (r *repository) CountActiveByRecruiter(ctx context.Context, recruiterID int64) (int, error) {
	query := `SELECT COUNT(*) FROM job_postings WHERE recruiter_id = $1 AND status = 'open'`

	var count int
	err := r.db.GetContext(ctx, &count, query, recruiterID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
