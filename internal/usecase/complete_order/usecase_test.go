package complete_order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	orderRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/order"
	staffRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	args := m.Called(ctx, id, completedAt)
	return args.Error(0)
}

type mockStaffRepo struct{ mock.Mock }

func (m *mockStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

type mockWalletRepo struct{ mock.Mock }

func (m *mockWalletRepo) Append(ctx context.Context, entry *domain.WalletEntry) (*domain.WalletEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletEntry), args.Error(1)
}

type mockLoyaltyRepo struct{ mock.Mock }

func (m *mockLoyaltyRepo) Accrue(ctx context.Context, clientID, branchID, points, stamps int64) (*domain.LoyaltyCard, error) {
	args := m.Called(ctx, clientID, branchID, points, stamps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoyaltyCard), args.Error(1)
}

type mockSettlementRepo struct{ mock.Mock }

func (m *mockSettlementRepo) Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *mockSettlementRepo) GetByOrderID(ctx context.Context, orderID int64) (*domain.Settlement, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, n notifier.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncOrderSettled(outcome string)     { m.Called(outcome) }
func (m *mockMetrics) IncNotificationFailed(event string) { m.Called(event) }

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	orders      *mockOrderRepo
	staff       *mockStaffRepo
	wallet      *mockWalletRepo
	loyalty     *mockLoyaltyRepo
	settlements *mockSettlementRepo
	notifier    *mockNotifier
	metrics     *mockMetrics
	uc          *UseCase
}

var now = time.Date(2026, 11, 2, 12, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		orders:      &mockOrderRepo{},
		staff:       &mockStaffRepo{},
		wallet:      &mockWalletRepo{},
		loyalty:     &mockLoyaltyRepo{},
		settlements: &mockSettlementRepo{},
		notifier:    &mockNotifier{},
		metrics:     &mockMetrics{},
	}
	f.uc = NewUseCase(f.orders, f.staff, f.wallet, f.loyalty, f.settlements, f.notifier, f.metrics,
		passTx{}, Settings{CommissionBasisPoints: ptr.Ptr(5000)}, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

// twoServicesOrder заказ с услугами 100.00 и 50.00
func twoServicesOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:       42,
		BranchID: 1,
		ClientID: 100,
		StaffID:  ptr.Ptr[int64](7),
		StartAt:  ptr.Ptr(now.Add(-2 * time.Hour)),
		EndAt:    ptr.Ptr(now.Add(-30 * time.Minute)),
		Status:   status,
		Items: []domain.OrderLineItem{
			{Kind: domain.ItemKindService, RefID: 10, Quantity: 1, UnitPriceMinor: 10000, SubtotalMinor: 10000},
			{Kind: domain.ItemKindService, RefID: 11, Quantity: 1, UnitPriceMinor: 5000, SubtotalMinor: 5000},
		},
	}
}

var staffPrincipal = domain.Principal{UserID: 7, Role: domain.RoleStaff}

func TestExecute_SettlesTwoServicesOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved := &domain.Settlement{OrderID: 42, StaffID: ptr.Ptr[int64](7), EarningMinor: 7500,
		LoyaltyPointsAdded: 150, LoyaltyStampsAdded: 2, CommissionBasisPoints: 5000}

	f.staff.On("GetByID", mock.Anything, int64(7)).Return(&domain.Staff{ID: 7, BranchID: 1, Active: true}, nil)
	f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(twoServicesOrder(domain.StatusConfirmed), nil).Once()
	f.wallet.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.WalletEntry) bool {
		return e.StaffID == 7 && e.AmountMinor == 7500 && e.Kind == domain.WalletEarning && *e.OrderID == 42
	})).Return(&domain.WalletEntry{ID: 1}, nil).Once()
	f.loyalty.On("Accrue", mock.Anything, int64(100), int64(1), int64(150), int64(2)).
		Return(&domain.LoyaltyCard{ClientID: 100, BranchID: 1, Points: 150, Stamps: 2}, nil).Once()
	f.settlements.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Settlement) bool {
		return s.EarningMinor == 7500 && s.LoyaltyPointsAdded == 150 && s.LoyaltyStampsAdded == 2
	})).Return(saved, nil).Once()
	f.orders.On("MarkCompleted", mock.Anything, int64(42), now).Return(nil).Once()
	f.metrics.On("IncOrderSettled", "settled").Return()
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notifier.Notification) bool {
		return n.Event == notifier.EventOrderCompleted && n.RecipientID == 100 && n.Data["points"] == "150"
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{Principal: staffPrincipal, OrderID: 42})
	require.NoError(t, err)
	assert.False(t, resp.Replayed)
	assert.Equal(t, domain.StatusCompleted, resp.Order.Status)
	assert.Equal(t, int64(7500), resp.Settlement.EarningMinor)

	// Повторный вызов отдает тот же расчет без новых начислений
	completed := twoServicesOrder(domain.StatusCompleted)
	completed.CompletedAt = ptr.Ptr(now)
	f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(completed, nil).Once()
	f.settlements.On("GetByOrderID", mock.Anything, int64(42)).Return(saved, nil).Once()
	f.metrics.On("IncOrderSettled", "replayed").Return()

	again, err := f.uc.Execute(ctx, &Request{Principal: staffPrincipal, OrderID: 42})
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, resp.Settlement, again.Settlement)

	f.wallet.AssertNumberOfCalls(t, "Append", 1)
	f.loyalty.AssertNumberOfCalls(t, "Accrue", 1)
	f.settlements.AssertNumberOfCalls(t, "Create", 1)
	f.notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestExecute_ProductOnlyOrderHasNoEarning(t *testing.T) {
	f := newFixture()
	order := &domain.Order{ID: 43, BranchID: 1, ClientID: 100, Status: domain.StatusConfirmed,
		Items: []domain.OrderLineItem{{Kind: domain.ItemKindProduct, RefID: 20, Quantity: 2, UnitPriceMinor: 700, SubtotalMinor: 1400}}}

	f.orders.On("GetByIDForUpdate", mock.Anything, int64(43)).Return(order, nil)
	f.settlements.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Settlement) bool {
		return s.StaffID == nil && s.EarningMinor == 0 && s.LoyaltyPointsAdded == 0 && s.LoyaltyStampsAdded == 0
	})).Return(&domain.Settlement{OrderID: 43, CommissionBasisPoints: 5000}, nil)
	f.orders.On("MarkCompleted", mock.Anything, int64(43), now).Return(nil)
	f.metrics.On("IncOrderSettled", "settled").Return()
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{Principal: domain.Principal{UserID: 1, Role: domain.RoleAdmin}, OrderID: 43})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Settlement.EarningMinor)

	f.wallet.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.loyalty.AssertNotCalled(t, "Accrue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_UsesStaffOwnRate(t *testing.T) {
	f := newFixture()
	order := twoServicesOrder(domain.StatusConfirmed)

	f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(order, nil)
	f.staff.On("GetByID", mock.Anything, int64(7)).Return(&domain.Staff{ID: 7, BranchID: 1, CommissionBasisPoints: ptr.Ptr(3333)}, nil)
	f.wallet.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.WalletEntry) bool {
		return e.AmountMinor == 4999 // floor(15000 * 3333 / 10000)
	})).Return(&domain.WalletEntry{ID: 2}, nil)
	f.loyalty.On("Accrue", mock.Anything, int64(100), int64(1), int64(150), int64(2)).Return(&domain.LoyaltyCard{}, nil)
	f.settlements.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Settlement) bool {
		return s.CommissionBasisPoints == 3333
	})).Return(&domain.Settlement{OrderID: 42, EarningMinor: 4999, CommissionBasisPoints: 3333}, nil)
	f.orders.On("MarkCompleted", mock.Anything, int64(42), now).Return(nil)
	f.metrics.On("IncOrderSettled", "settled").Return()
	f.metrics.On("IncNotificationFailed", string(notifier.EventOrderCompleted)).Return()
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(notifier.ErrPublish)

	resp, err := f.uc.Execute(context.Background(), &Request{Principal: staffPrincipal, OrderID: 42})
	require.NoError(t, err)
	assert.Equal(t, 3333, resp.Settlement.CommissionBasisPoints)
	f.wallet.AssertExpectations(t)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		setup     func(f *fixture)
		wantErr   error
	}{
		{
			name:      "client cannot complete",
			principal: domain.Principal{UserID: 100, Role: domain.RoleClient},
			setup:     func(f *fixture) {},
			wantErr:   domain.ErrAuthorization,
		},
		{
			name:      "order not found",
			principal: staffPrincipal,
			setup: func(f *fixture) {
				f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(nil, orderRepo.ErrOrderNotFound)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:      "staff of another branch",
			principal: staffPrincipal,
			setup: func(f *fixture) {
				f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(twoServicesOrder(domain.StatusConfirmed), nil)
				f.staff.On("GetByID", mock.Anything, int64(7)).Return(&domain.Staff{ID: 7, BranchID: 2}, nil)
			},
			wantErr: domain.ErrAuthorization,
		},
		{
			name:      "unknown staff user",
			principal: staffPrincipal,
			setup: func(f *fixture) {
				f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(twoServicesOrder(domain.StatusConfirmed), nil)
				f.staff.On("GetByID", mock.Anything, int64(7)).Return(nil, staffRepo.ErrStaffNotFound)
			},
			wantErr: domain.ErrAuthorization,
		},
		{
			name:      "pending order must be confirmed first",
			principal: domain.Principal{UserID: 1, Role: domain.RoleAdmin},
			setup: func(f *fixture) {
				f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(twoServicesOrder(domain.StatusPending), nil)
			},
			wantErr: domain.ErrState,
		},
		{
			name:      "completed without completion time is not replayed",
			principal: domain.Principal{UserID: 1, Role: domain.RoleAdmin},
			setup: func(f *fixture) {
				f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(twoServicesOrder(domain.StatusCompleted), nil)
			},
			wantErr: domain.ErrState,
		},
		{
			name:      "cancelled order",
			principal: domain.Principal{UserID: 1, Role: domain.RoleAdmin},
			setup: func(f *fixture) {
				f.orders.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(twoServicesOrder(domain.StatusCancelled), nil)
			},
			wantErr: domain.ErrState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, err := f.uc.Execute(context.Background(), &Request{Principal: tt.principal, OrderID: 42})

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			f.wallet.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
			f.settlements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
