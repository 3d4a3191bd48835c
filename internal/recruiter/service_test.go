package recruiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hireflow/internal/auth"
	"hireflow/internal/subscription"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, companyName, email, passwordHash, role string) (*Recruiter, error) {
	args := m.Called(ctx, companyName, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Recruiter), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Recruiter, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Recruiter), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Recruiter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Recruiter), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockTrialStore is a mock implementation of TrialStore
type MockTrialStore struct {
	mock.Mock
}

func (m *MockTrialStore) UpsertTrial(ctx context.Context, recruiterID int64, trialEndsAt time.Time) (*subscription.Record, error) {
	args := m.Called(ctx, recruiterID, trialEndsAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Record), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendWelcome(ctx context.Context, email, companyName string, trialEndsAt time.Time) error {
	args := m.Called(ctx, email, companyName, trialEndsAt)
	return args.Error(0)
}

func (m *MockNotifier) SendTrialExpiring(ctx context.Context, email, companyName string, trialEndsAt time.Time) error {
	args := m.Called(ctx, email, companyName, trialEndsAt)
	return args.Error(0)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           RegisterRequest
		setupMock     func(*MockRepository, *MockTrialStore)
		expectError   bool
		expectedError error
	}{
		{
			name: "successful registration provisions trial",
			req: RegisterRequest{
				CompanyName: "Acme Hiring",
				Email:       "talent@acme.example",
				Password:    "password123",
			},
			setupMock: func(m *MockRepository, s *MockTrialStore) {
				m.On("EmailExists", mock.Anything, "talent@acme.example").Return(false, nil)
				m.On("Create", mock.Anything, "Acme Hiring", "talent@acme.example", mock.Anything, "recruiter").Return(&Recruiter{
					ID:          1,
					CompanyName: "Acme Hiring",
					Email:       "talent@acme.example",
					Role:        "recruiter",
				}, nil)
				s.On("UpsertTrial", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(&subscription.Record{ID: 10, RecruiterID: 1, PlanID: "trial"}, nil)
			},
			expectError: false,
		},
		{
			name: "email already exists",
			req: RegisterRequest{
				CompanyName: "Acme Hiring",
				Email:       "existing@acme.example",
				Password:    "password123",
			},
			setupMock: func(m *MockRepository, s *MockTrialStore) {
				m.On("EmailExists", mock.Anything, "existing@acme.example").Return(true, nil)
			},
			expectError:   true,
			expectedError: ErrEmailExists,
		},
		{
			name: "registration survives trial provisioning failure",
			req: RegisterRequest{
				CompanyName: "Acme Hiring",
				Email:       "talent@acme.example",
				Password:    "password123",
			},
			setupMock: func(m *MockRepository, s *MockTrialStore) {
				m.On("EmailExists", mock.Anything, "talent@acme.example").Return(false, nil)
				m.On("Create", mock.Anything, "Acme Hiring", "talent@acme.example", mock.Anything, "recruiter").Return(&Recruiter{
					ID:    1,
					Email: "talent@acme.example",
					Role:  "recruiter",
				}, nil)
				s.On("UpsertTrial", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil, errors.New("db down"))
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			subs := new(MockTrialStore)
			tt.setupMock(repo, subs)

			svc := NewService(repo, subs, nil, "secret", 14)
			rec, accessToken, refreshToken, err := svc.Register(context.Background(), tt.req)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				require.NotNil(t, rec)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
			}
			repo.AssertExpectations(t)
			subs.AssertExpectations(t)
		})
	}
}

func TestService_Register_TrialWindow(t *testing.T) {
	repo := new(MockRepository)
	subs := new(MockTrialStore)

	repo.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&Recruiter{ID: 1, Email: "t@acme.example", Role: "recruiter"}, nil)

	var got time.Time
	subs.On("UpsertTrial", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		got = args.Get(2).(time.Time)
	}).Return(&subscription.Record{ID: 10}, nil)

	svc := NewService(repo, subs, nil, "secret", 14)
	_, _, _, err := svc.Register(context.Background(), RegisterRequest{CompanyName: "Acme", Email: "t@acme.example", Password: "password123"})
	require.NoError(t, err)

	expected := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, expected, got, 5*time.Second)
}

func TestService_Register_SendsWelcome(t *testing.T) {
	repo := new(MockRepository)
	subs := new(MockTrialStore)
	notifier := new(MockNotifier)

	trialEnds := time.Now().AddDate(0, 0, 14)
	repo.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&Recruiter{ID: 1, CompanyName: "Acme", Email: "t@acme.example", Role: "recruiter"}, nil)
	subs.On("UpsertTrial", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(&subscription.Record{
		ID: 10, RecruiterID: 1, PlanID: "trial", Status: subscription.StatusTrialing, TrialEndsAt: &trialEnds,
	}, nil)
	notifier.On("SendWelcome", mock.Anything, "t@acme.example", "Acme", trialEnds).Return(nil)

	svc := NewService(repo, subs, notifier, "secret", 14)
	_, _, _, err := svc.Register(context.Background(), RegisterRequest{CompanyName: "Acme", Email: "t@acme.example", Password: "password123"})

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestService_Register_NoWelcomeWhenTrialFails(t *testing.T) {
	repo := new(MockRepository)
	subs := new(MockTrialStore)
	notifier := new(MockNotifier)

	repo.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&Recruiter{ID: 1, Email: "t@acme.example", Role: "recruiter"}, nil)
	subs.On("UpsertTrial", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil, errors.New("db down"))

	svc := NewService(repo, subs, notifier, "secret", 14)
	_, _, _, err := svc.Register(context.Background(), RegisterRequest{CompanyName: "Acme", Email: "t@acme.example", Password: "password123"})

	require.NoError(t, err)
	notifier.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	tests := []struct {
		name          string
		req           LoginRequest
		setupMock     func(*MockRepository, *MockTrialStore)
		expectError   bool
		expectedError error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: "talent@acme.example", Password: "password123"},
			setupMock: func(m *MockRepository, s *MockTrialStore) {
				m.On("FindByEmail", mock.Anything, "talent@acme.example").Return(&Recruiter{
					ID:           1,
					Email:        "talent@acme.example",
					PasswordHash: hash,
					Role:         "recruiter",
				}, nil)
				s.On("UpsertTrial", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(&subscription.Record{ID: 10}, nil)
			},
			expectError: false,
		},
		{
			name: "wrong password",
			req:  LoginRequest{Email: "talent@acme.example", Password: "nope-nope"},
			setupMock: func(m *MockRepository, s *MockTrialStore) {
				m.On("FindByEmail", mock.Anything, "talent@acme.example").Return(&Recruiter{
					ID:           1,
					Email:        "talent@acme.example",
					PasswordHash: hash,
					Role:         "recruiter",
				}, nil)
			},
			expectError:   true,
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "unknown email",
			req:  LoginRequest{Email: "ghost@acme.example", Password: "password123"},
			setupMock: func(m *MockRepository, s *MockTrialStore) {
				m.On("FindByEmail", mock.Anything, "ghost@acme.example").Return(nil, errors.New("sql: no rows in result set"))
			},
			expectError:   true,
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			subs := new(MockTrialStore)
			tt.setupMock(repo, subs)

			svc := NewService(repo, subs, nil, "secret", 14)
			rec, accessToken, _, err := svc.Login(context.Background(), tt.req)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				require.NotNil(t, rec)
				assert.NotEmpty(t, accessToken)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Login_TrialExpiringNotice(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	tests := []struct {
		name         string
		trialEndsIn  time.Duration
		status       subscription.Status
		expectNotice bool
	}{
		{"ends within window", 48 * time.Hour, subscription.StatusTrialing, true},
		{"ends far out", 10 * 24 * time.Hour, subscription.StatusTrialing, false},
		{"already ended", -time.Hour, subscription.StatusTrialing, false},
		{"not trialing", 48 * time.Hour, subscription.StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			subs := new(MockTrialStore)
			notifier := new(MockNotifier)

			trialEnds := time.Now().Add(tt.trialEndsIn)
			repo.On("FindByEmail", mock.Anything, "t@acme.example").Return(&Recruiter{
				ID: 1, CompanyName: "Acme", Email: "t@acme.example", PasswordHash: hash, Role: "recruiter",
			}, nil)
			subs.On("UpsertTrial", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(&subscription.Record{
				ID: 10, RecruiterID: 1, PlanID: "trial", Status: tt.status, TrialEndsAt: &trialEnds,
			}, nil)
			if tt.expectNotice {
				notifier.On("SendTrialExpiring", mock.Anything, "t@acme.example", "Acme", trialEnds).Return(nil)
			}

			svc := NewService(repo, subs, notifier, "secret", 14)
			_, _, _, err := svc.Login(context.Background(), LoginRequest{Email: "t@acme.example", Password: "password123"})

			require.NoError(t, err)
			if tt.expectNotice {
				notifier.AssertExpectations(t)
			} else {
				notifier.AssertNotCalled(t, "SendTrialExpiring", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_RefreshToken(t *testing.T) {
	repo := new(MockRepository)
	subs := new(MockTrialStore)
	svc := NewService(repo, subs, nil, "secret", 14)

	_, refreshToken, err := auth.GenerateTokens(1, "talent@acme.example", "recruiter", "secret", "secret")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, int64(1)).Return(&Recruiter{
		ID:    1,
		Email: "talent@acme.example",
		Role:  "recruiter",
	}, nil)

	newToken, rec, err := svc.RefreshToken(context.Background(), refreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, newToken)
	assert.Equal(t, int64(1), rec.ID)
}

func TestService_RefreshToken_Invalid(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockTrialStore), nil, "secret", 14)

	_, _, err := svc.RefreshToken(context.Background(), "not-a-token")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
