package entitlement

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hireflow/internal/plan"
	"hireflow/internal/subscription"
)

type MockStore struct{ mock.Mock }

func (m *MockStore) GetRecords(ctx context.Context, recruiterID int64) ([]subscription.Record, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Record), args.Error(1)
}

func (m *MockStore) GetActiveRecords(ctx context.Context, recruiterID int64) ([]subscription.Record, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Record), args.Error(1)
}

func (m *MockStore) GetByID(ctx context.Context, recordID int64) (*subscription.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Record), args.Error(1)
}

func (m *MockStore) UpsertTrial(ctx context.Context, recruiterID int64, trialEndsAt time.Time) (*subscription.Record, error) {
	args := m.Called(ctx, recruiterID, trialEndsAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Record), args.Error(1)
}

func (m *MockStore) InsertPlan(ctx context.Context, recruiterID int64, planID string, status subscription.Status, periodStart, periodEnd time.Time) (*subscription.Record, error) {
	args := m.Called(ctx, recruiterID, planID, status, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Record), args.Error(1)
}

func (m *MockStore) UpdateStatus(ctx context.Context, recordID int64, status subscription.Status) error {
	return m.Called(ctx, recordID, status).Error(0)
}

func (m *MockStore) UpdatePeriod(ctx context.Context, recordID int64, periodStart, periodEnd time.Time) error {
	return m.Called(ctx, recordID, periodStart, periodEnd).Error(0)
}

func (m *MockStore) GrantBonus(ctx context.Context, recordID int64, cv, job, match int, windowStart, windowEnd *time.Time) error {
	return m.Called(ctx, recordID, cv, job, match, windowStart, windowEnd).Error(0)
}

func (m *MockStore) IncrementUsage(ctx context.Context, recordID int64, resource plan.Resource, limit plan.Quota) (int, error) {
	args := m.Called(ctx, recordID, resource, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) ConsumeBonus(ctx context.Context, recordID int64, resource plan.Resource) (int, error) {
	args := m.Called(ctx, recordID, resource)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) ResetPeriod(ctx context.Context, recordID int64, staleEnd, newStart, newEnd time.Time) (bool, error) {
	args := m.Called(ctx, recordID, staleEnd, newStart, newEnd)
	return args.Bool(0), args.Error(1)
}

type MockJobCounter struct{ mock.Mock }

func (m *MockJobCounter) CountActiveByRecruiter(ctx context.Context, recruiterID int64) (int, error) {
	args := m.Called(ctx, recruiterID)
	return args.Int(0), args.Error(1)
}
