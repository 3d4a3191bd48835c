package entitlement

import (
	"context"
	"errors"
	"time"

	"hireflow/internal/metrics"
	"hireflow/internal/plan"
	"hireflow/internal/subscription"
)

// Notifier delivers the quota notices triggered by deny decisions. It must
// not block; implementations queue and return.
type Notifier interface {
	QuotaExhausted(ctx context.Context, recruiterID int64, resource plan.Resource)
}

// Service composes store, catalog, resolver, gate and accountant into the
// request-scoped admission operation: resolve, check, act, record. There is
// no background scheduler; one-time period rollover happens opportunistically
// whenever a snapshot is taken.
type Service struct {
	store      subscription.Store
	catalog    *plan.Catalog
	resolver   *Resolver
	accountant *Accountant
	jobs       JobCounter
	notifier   Notifier
}

// NewService wires the admission pipeline. notifier may be nil; deny
// decisions are then recorded but not mailed.
func NewService(store subscription.Store, catalog *plan.Catalog, jobs JobCounter, notifier Notifier) *Service {
	return &Service{
		store:      store,
		catalog:    catalog,
		resolver:   NewResolver(catalog),
		accountant: NewAccountant(store, catalog, jobs),
		jobs:       jobs,
		notifier:   notifier,
	}
}

func (s *Service) Catalog() *plan.Catalog {
	return s.catalog
}

// Snapshot resolves the recruiter's current EffectivePlan. Zero records is a
// normal state and resolves to zero access, not an error; only store I/O
// failures propagate.
func (s *Service) Snapshot(ctx context.Context, recruiterID int64, now time.Time) (EffectivePlan, error) {
	records, err := s.store.GetRecords(ctx, recruiterID)
	if err != nil {
		return EffectivePlan{}, err
	}

	refetch := false
	for i := range records {
		applied, err := s.accountant.RolloverIfExpired(ctx, &records[i], now)
		if err != nil && !errors.Is(err, plan.ErrUnknownPlan) {
			return EffectivePlan{}, err
		}
		if applied {
			refetch = true
		}
	}
	if refetch {
		records, err = s.store.GetRecords(ctx, recruiterID)
		if err != nil {
			return EffectivePlan{}, err
		}
	}

	jobCount, err := s.jobs.CountActiveByRecruiter(ctx, recruiterID)
	if err != nil {
		return EffectivePlan{}, err
	}

	return s.resolver.Resolve(records, jobCount, now), nil
}

// Admit gates an action. It does not consume quota; callers perform the
// action and then call Commit.
func (s *Service) Admit(ctx context.Context, recruiterID int64, action Action, now time.Time) (Decision, error) {
	ep, err := s.Snapshot(ctx, recruiterID, now)
	if err != nil {
		return Decision{}, err
	}

	decision := Check(ep, action)
	outcome := "allowed"
	if !decision.Allowed {
		outcome = string(decision.Reason)
	}
	metrics.RecordAdmission(string(action), outcome)

	if !decision.Allowed && decision.Reason == ReasonQuotaExceeded && s.notifier != nil {
		s.notifier.QuotaExhausted(ctx, recruiterID, decision.Resource)
	}
	return decision, nil
}

// Commit records one consumed unit for an action that already succeeded.
func (s *Service) Commit(ctx context.Context, recruiterID int64, action Action, now time.Time) (int, error) {
	return s.accountant.Increment(ctx, recruiterID, action.Resource(), now)
}

// Records exposes the recruiter's raw subscription rows for the account view.
func (s *Service) Records(ctx context.Context, recruiterID int64) ([]subscription.Record, error) {
	return s.store.GetRecords(ctx, recruiterID)
}
