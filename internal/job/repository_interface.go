package job

import "context"

type Repository interface {
	Create(ctx context.Context, recruiterID int64, title, description string) (*Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]Job, error)
	Archive(ctx context.Context, id, recruiterID int64) error
	CountActiveByRecruiter(ctx context.Context, recruiterID int64) (int, error)
}
