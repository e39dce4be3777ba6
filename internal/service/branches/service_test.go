package branches

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-BarberService/internal/service/branches/models"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type mockBranchRepo struct{ mock.Mock }

func (m *mockBranchRepo) Exists(ctx context.Context, branchID int64) (bool, error) {
	args := m.Called(ctx, branchID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBranchRepo) ListHours(ctx context.Context, branchID int64) ([]domain.OperatingHoursRule, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).([]domain.OperatingHoursRule), args.Error(1)
}

func (m *mockBranchRepo) UpsertHours(ctx context.Context, rule *domain.OperatingHoursRule) (*domain.OperatingHoursRule, error) {
	args := m.Called(ctx, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingHoursRule), args.Error(1)
}

func (m *mockBranchRepo) DeleteHours(ctx context.Context, branchID int64, weekday *int) error {
	return m.Called(ctx, branchID, weekday).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var admin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}

func TestUpsertHours(t *testing.T) {
	repo := &mockBranchRepo{}
	s := NewService(repo, nopLogger{})
	ctx := context.Background()

	repo.On("Exists", ctx, int64(1)).Return(true, nil)
	repo.On("UpsertHours", ctx, mock.MatchedBy(func(r *domain.OperatingHoursRule) bool {
		return *r.Weekday == 6 && r.Open == types.MustTimeString("10:00") && r.Close == types.MustTimeString("16:00")
	})).Return(&domain.OperatingHoursRule{ID: 3, BranchID: 1, Weekday: ptr.Ptr(6),
		Open: types.MustTimeString("10:00"), Close: types.MustTimeString("16:00")}, nil)

	resp, err := s.UpsertHours(ctx, admin, 1, &models.UpsertHoursRequest{Weekday: ptr.Ptr(6), Open: "10:00", Close: "16:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.False(t, resp.IsDefault)
}

func TestUpsertHours_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		req       models.UpsertHoursRequest
		wantErr   error
	}{
		{"staff is not admin", domain.Principal{UserID: 7, Role: domain.RoleStaff}, models.UpsertHoursRequest{Open: "09:00", Close: "18:00"}, domain.ErrAuthorization},
		{"open after close", admin, models.UpsertHoursRequest{Open: "18:00", Close: "09:00"}, domain.ErrValidation},
		{"bad weekday", admin, models.UpsertHoursRequest{Weekday: ptr.Ptr(7), Open: "09:00", Close: "18:00"}, domain.ErrValidation},
		{"bad time", admin, models.UpsertHoursRequest{Open: "9am", Close: "18:00"}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBranchRepo{}
			s := NewService(repo, nopLogger{})

			_, err := s.UpsertHours(context.Background(), tt.principal, 1, &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpsertHours", mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteHours(t *testing.T) {
	repo := &mockBranchRepo{}
	s := NewService(repo, nopLogger{})
	ctx := context.Background()

	repo.On("DeleteHours", ctx, int64(1), (*int)(nil)).Return(nil)
	repo.On("DeleteHours", ctx, int64(1), ptr.Ptr(2)).Return(branchRepo.ErrHoursNotFound)

	require.NoError(t, s.DeleteHours(ctx, admin, 1, "default"))
	assert.ErrorIs(t, s.DeleteHours(ctx, admin, 1, "2"), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteHours(ctx, admin, 1, "monday"), domain.ErrValidation)
}
