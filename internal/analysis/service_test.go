package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hireflow/internal/entitlement"
	"hireflow/internal/job"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *CVAnalysis) (*CVAnalysis, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CVAnalysis), args.Error(1)
}

func (m *MockRepository) ListByRecruiter(ctx context.Context, recruiterID int64) ([]CVAnalysis, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CVAnalysis), args.Error(1)
}

func (m *MockRepository) ListByJob(ctx context.Context, recruiterID, jobID int64) ([]CVAnalysis, error) {
	args := m.Called(ctx, recruiterID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CVAnalysis), args.Error(1)
}

// MockGate is a mock implementation of Gate
type MockGate struct {
	mock.Mock
}

func (m *MockGate) Admit(ctx context.Context, recruiterID int64, action entitlement.Action, now time.Time) (entitlement.Decision, error) {
	args := m.Called(ctx, recruiterID, action, now)
	return args.Get(0).(entitlement.Decision), args.Error(1)
}

func (m *MockGate) Commit(ctx context.Context, recruiterID int64, action entitlement.Action, now time.Time) (int, error) {
	args := m.Called(ctx, recruiterID, action, now)
	return args.Int(0), args.Error(1)
}

// MockJobFinder is a mock implementation of JobFinder
type MockJobFinder struct {
	mock.Mock
}

func (m *MockJobFinder) GetByID(ctx context.Context, id int64) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func newTestAnalysisService() (Service, *MockRepository, *MockGate, *MockJobFinder) {
	repo := new(MockRepository)
	gate := new(MockGate)
	jobs := new(MockJobFinder)
	svc := NewService(repo, NewHeuristicProvider(), gate, jobs)
	return svc, repo, gate, jobs
}

func TestAnalyzeCV_Allowed(t *testing.T) {
	svc, repo, gate, _ := newTestAnalysisService()

	gate.On("Admit", mock.Anything, int64(7), entitlement.ActionCVAnalysis, mock.AnythingOfType("time.Time")).
		Return(entitlement.Decision{Allowed: true, Source: entitlement.SourceBase}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*analysis.CVAnalysis")).
		Return(&CVAnalysis{ID: 1, RecruiterID: 7, CandidateName: "Dana", Score: 20}, nil)
	gate.On("Commit", mock.Anything, int64(7), entitlement.ActionCVAnalysis, mock.AnythingOfType("time.Time")).
		Return(1, nil)

	result, decision, err := svc.AnalyzeCV(context.Background(), 7, AnalyzeCVRequest{
		CandidateName: "Dana",
		CVText:        "Go developer with PostgreSQL experience and more.",
	})

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, int64(1), result.ID)
	repo.AssertExpectations(t)
	gate.AssertExpectations(t)
}

func TestAnalyzeCV_Denied(t *testing.T) {
	svc, repo, gate, _ := newTestAnalysisService()

	gate.On("Admit", mock.Anything, int64(7), entitlement.ActionCVAnalysis, mock.AnythingOfType("time.Time")).
		Return(entitlement.Decision{Allowed: false, Reason: entitlement.ReasonQuotaExceeded, Resource: "cv"}, nil)

	result, decision, err := svc.AnalyzeCV(context.Background(), 7, AnalyzeCVRequest{
		CandidateName: "Dana",
		CVText:        "Go developer with PostgreSQL experience and more.",
	})

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.False(t, decision.Allowed)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	gate.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeCV_ProviderFailureDoesNotCommit(t *testing.T) {
	svc, repo, gate, _ := newTestAnalysisService()

	gate.On("Admit", mock.Anything, int64(7), entitlement.ActionCVAnalysis, mock.AnythingOfType("time.Time")).
		Return(entitlement.Decision{Allowed: true}, nil)

	_, _, err := svc.AnalyzeCV(context.Background(), 7, AnalyzeCVRequest{
		CandidateName: "Dana",
		CVText:        "                    ",
	})

	assert.ErrorIs(t, err, ErrUnreadableCV)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	gate.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeCV_ForeignJobHidden(t *testing.T) {
	svc, _, gate, jobs := newTestAnalysisService()

	gate.On("Admit", mock.Anything, int64(7), entitlement.ActionCVAnalysis, mock.AnythingOfType("time.Time")).
		Return(entitlement.Decision{Allowed: true}, nil)
	jobs.On("GetByID", mock.Anything, int64(3)).Return(&job.Job{ID: 3, RecruiterID: 99}, nil)

	jobID := int64(3)
	_, _, err := svc.AnalyzeCV(context.Background(), 7, AnalyzeCVRequest{
		JobID:         &jobID,
		CandidateName: "Dana",
		CVText:        "Go developer with PostgreSQL experience and more.",
	})

	assert.ErrorIs(t, err, job.ErrJobNotFound)
}

func TestMatchCandidates_Allowed(t *testing.T) {
	svc, repo, gate, jobs := newTestAnalysisService()

	gate.On("Admit", mock.Anything, int64(7), entitlement.ActionMatchExecution, mock.AnythingOfType("time.Time")).
		Return(entitlement.Decision{Allowed: true, Source: entitlement.SourceBase}, nil)
	jobs.On("GetByID", mock.Anything, int64(3)).Return(&job.Job{ID: 3, RecruiterID: 7, Title: "Go Engineer", Description: "Go services"}, nil)
	repo.On("ListByJob", mock.Anything, int64(7), int64(3)).Return([]CVAnalysis{
		{ID: 1, CandidateName: "Dana", Score: 50, Skills: "go"},
		{ID: 2, CandidateName: "Sam", Score: 30, Skills: "java"},
	}, nil)
	gate.On("Commit", mock.Anything, int64(7), entitlement.ActionMatchExecution, mock.AnythingOfType("time.Time")).
		Return(1, nil)

	matches, decision, err := svc.MatchCandidates(context.Background(), 7, MatchRequest{JobID: 3})

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	require.Len(t, matches, 2)
	assert.Equal(t, "Dana", matches[0].CandidateName)
	gate.AssertExpectations(t)
}

func TestMatchCandidates_Denied(t *testing.T) {
	svc, repo, gate, jobs := newTestAnalysisService()

	gate.On("Admit", mock.Anything, int64(7), entitlement.ActionMatchExecution, mock.AnythingOfType("time.Time")).
		Return(entitlement.Decision{Allowed: false, Reason: entitlement.ReasonSubscriptionInactive, Resource: "match"}, nil)

	matches, decision, err := svc.MatchCandidates(context.Background(), 7, MatchRequest{JobID: 3})

	require.NoError(t, err)
	assert.Nil(t, matches)
	assert.False(t, decision.Allowed)
	jobs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListByJob", mock.Anything, mock.Anything, mock.Anything)
}
