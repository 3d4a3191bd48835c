package recruiter

import (
	"context"
	"errors"
	"time"

	"hireflow/internal/auth"
	"hireflow/internal/logger"
	"hireflow/internal/subscription"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TrialStore is the slice of the subscription store the auth flow needs.
type TrialStore interface {
	UpsertTrial(ctx context.Context, recruiterID int64, trialEndsAt time.Time) (*subscription.Record, error)
}

// Notifier delivers account lifecycle notices. Sends queue and return; they
// never block or fail the auth flow.
type Notifier interface {
	SendWelcome(ctx context.Context, email, companyName string, trialEndsAt time.Time) error
	SendTrialExpiring(ctx context.Context, email, companyName string, trialEndsAt time.Time) error
}

// trialExpiryNotice is how close to the trial end a login triggers the
// expiring-soon notice.
const trialExpiryNotice = 3 * 24 * time.Hour

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Recruiter, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Recruiter, string, string, error)
	GetByID(ctx context.Context, recruiterID int64) (*Recruiter, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Recruiter, error)
}

type service struct {
	repo      Repository
	subs      TrialStore
	notifier  Notifier
	jwtSecret string
	trialDays int
}

// NewService builds the auth service. notifier may be nil; lifecycle notices
// are then skipped.
func NewService(repo Repository, subs TrialStore, notifier Notifier, jwtSecret string, trialDays int) Service {
	return &service{
		repo:      repo,
		subs:      subs,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		trialDays: trialDays,
	}
}

// Register creates the recruiter account and provisions its trial plan in one
// flow. A failed trial upsert does not fail the registration: the account is
// usable and the trial is retried on first login.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*Recruiter, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	rec, err := s.repo.Create(ctx, req.CompanyName, req.Email, passwordHash, "recruiter")
	if err != nil {
		return nil, "", "", err
	}

	trial := s.ensureTrial(ctx, rec.ID)
	if trial != nil && trial.TrialEndsAt != nil && s.notifier != nil {
		s.notifier.SendWelcome(ctx, rec.Email, rec.CompanyName, *trial.TrialEndsAt)
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		rec.ID,
		rec.Email,
		rec.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return rec, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Recruiter, string, string, error) {
	rec, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(rec.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	trial := s.ensureTrial(ctx, rec.ID)
	s.noticeTrialExpiring(ctx, rec, trial)

	accessToken, refreshToken, err := auth.GenerateTokens(
		rec.ID,
		rec.Email,
		rec.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return rec, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, recruiterID int64) (*Recruiter, error) {
	return s.repo.FindByID(ctx, recruiterID)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Recruiter, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	rec, err := s.repo.FindByID(ctx, claims.RecruiterID)
	if err != nil {
		return "", nil, ErrRecruiterNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(rec.ID, rec.Email, rec.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, rec, nil
}

// ensureTrial is idempotent: the store returns the existing base record when
// one was already created for this recruiter.
func (s *service) ensureTrial(ctx context.Context, recruiterID int64) *subscription.Record {
	trialEndsAt := time.Now().AddDate(0, 0, s.trialDays)
	rec, err := s.subs.UpsertTrial(ctx, recruiterID, trialEndsAt)
	if err != nil {
		logger.Errorf("failed to provision trial for recruiter %d: %v", recruiterID, err)
		return nil
	}
	return rec
}

// noticeTrialExpiring queues the expiring-soon notice when the recruiter is
// still trialing and the trial ends within the notice window.
func (s *service) noticeTrialExpiring(ctx context.Context, rec *Recruiter, trial *subscription.Record) {
	if s.notifier == nil || trial == nil || trial.TrialEndsAt == nil {
		return
	}
	if trial.Status != subscription.StatusTrialing {
		return
	}
	until := time.Until(*trial.TrialEndsAt)
	if until > 0 && until <= trialExpiryNotice {
		s.notifier.SendTrialExpiring(ctx, rec.Email, rec.CompanyName, *trial.TrialEndsAt)
	}
}
