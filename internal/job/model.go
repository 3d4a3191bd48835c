package job

import "time"

type Status string

const (
	StatusOpen     Status = "open"
	StatusArchived Status = "archived"
)

type Job struct {
	ID          int64     `db:"id" json:"id"`
	RecruiterID int64     `db:"recruiter_id" json:"recruiter_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Status      Status    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=160"`
	Description string `json:"description" binding:"required,max=8000"`
}
