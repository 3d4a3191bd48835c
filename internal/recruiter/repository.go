package recruiter

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"hireflow/internal/db"
)

var ErrRecruiterNotFound = errors.New("recruiter not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, companyName, email, passwordHash, role string) (*Recruiter, error) {
	query := `
		INSERT INTO recruiters (company_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_name, email, password_hash, role, created_at
	`

	var rec Recruiter
	err := r.db.GetContext(ctx, &rec, query, companyName, email, passwordHash, role)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Recruiter, error) {
	query := `
		SELECT id, company_name, email, password_hash, role, created_at
		FROM recruiters
		WHERE email = $1
	`

	var rec Recruiter
	err := r.db.GetContext(ctx, &rec, query, email)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Recruiter, error) {
	query := `
		SELECT id, company_name, email, password_hash, role, created_at
		FROM recruiters
		WHERE id = $1
	`

	var rec Recruiter
	err := r.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM recruiters WHERE email = $1)`
	return db.Exists(ctx, r.db, query, email)
}
