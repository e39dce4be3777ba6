package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BarberService/internal/service/wallet/models"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

type mockWalletRepo struct{ mock.Mock }

func (m *mockWalletRepo) ListByStaff(ctx context.Context, staffID int64, from, to *time.Time) ([]domain.WalletEntry, error) {
	args := m.Called(ctx, staffID, from, to)
	return args.Get(0).([]domain.WalletEntry), args.Error(1)
}

func (m *mockWalletRepo) Balance(ctx context.Context, staffID int64) (int64, error) {
	args := m.Called(ctx, staffID)
	return args.Get(0).(int64), args.Error(1)
}

type mockStaffRepo struct{ mock.Mock }

func (m *mockStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var entries = []domain.WalletEntry{
	{ID: 1, StaffID: 7, OrderID: ptr.Ptr[int64](42), AmountMinor: 7500, Kind: domain.WalletEarning,
		CreatedAt: time.Date(2026, 11, 2, 12, 0, 0, 0, time.UTC)},
	{ID: 2, StaffID: 7, AmountMinor: -5000, Kind: domain.WalletPayout,
		CreatedAt: time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC)},
}

func newService() (*Service, *mockWalletRepo, *mockStaffRepo) {
	w := &mockWalletRepo{}
	st := &mockStaffRepo{}
	return NewService(w, st, nopLogger{}), w, st
}

func TestGet_OwnWallet(t *testing.T) {
	s, w, st := newService()
	ctx := context.Background()

	st.On("GetByID", ctx, int64(7)).Return(&domain.Staff{ID: 7, BranchID: 1, Name: "Иван"}, nil)
	w.On("Balance", ctx, int64(7)).Return(int64(2500), nil)
	w.On("ListByStaff", ctx, int64(7), (*time.Time)(nil), (*time.Time)(nil)).Return(entries, nil)

	resp, err := s.Get(ctx, domain.Principal{UserID: 7, Role: domain.RoleStaff}, &models.GetWalletRequest{StaffID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), resp.BalanceMinor)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "earning", resp.Entries[0].Kind)
}

func TestGet_AccessRules(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{"other staff", domain.Principal{UserID: 8, Role: domain.RoleStaff}, domain.ErrAuthorization},
		{"client", domain.Principal{UserID: 7, Role: domain.RoleClient}, domain.ErrAuthorization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w, _ := newService()

			_, err := s.Get(context.Background(), tt.principal, &models.GetWalletRequest{StaffID: 7})

			assert.ErrorIs(t, err, tt.wantErr)
			w.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown staff", func(t *testing.T) {
		s, _, st := newService()
		st.On("GetByID", mock.Anything, int64(9)).Return(nil, staffRepo.ErrStaffNotFound)

		_, err := s.Get(context.Background(), domain.Principal{UserID: 1, Role: domain.RoleAdmin}, &models.GetWalletRequest{StaffID: 9})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestExportStatement(t *testing.T) {
	s, w, st := newService()
	ctx := context.Background()

	st.On("GetByID", ctx, int64(7)).Return(&domain.Staff{ID: 7, BranchID: 1, Name: "Иван"}, nil)
	w.On("ListByStaff", ctx, int64(7), (*time.Time)(nil), (*time.Time)(nil)).Return(entries, nil)

	buf, err := s.ExportStatement(ctx, domain.Principal{UserID: 1, Role: domain.RoleAdmin}, &models.GetWalletRequest{StaffID: 7})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(statementSheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Сумма", header)

	orderID, err := f.GetCellValue(statementSheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "42", orderID)

	running, err := f.GetCellValue(statementSheet, "F4")
	require.NoError(t, err)
	assert.Equal(t, "25", running)
}
