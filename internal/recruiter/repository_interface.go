package recruiter

import "context"

type Repository interface {
	Create(ctx context.Context, companyName, email, passwordHash, role string) (*Recruiter, error)
	FindByEmail(ctx context.Context, email string) (*Recruiter, error)
	FindByID(ctx context.Context, id int64) (*Recruiter, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
