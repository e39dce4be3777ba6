package checkout_cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/cart"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	cartStore "github.com/m04kA/SMC-BarberService/internal/infra/cache/cart"
)

// fakeCreator отклоняет заказы с услугами и принимает товарные
type fakeCreator struct {
	principals []domain.Principal
	requests   []domain.CreateOrderRequest
}

func (f *fakeCreator) Submit(_ context.Context, principal domain.Principal, req *domain.CreateOrderRequest) (*domain.Order, error) {
	f.principals = append(f.principals, principal)
	f.requests = append(f.requests, *req)
	if req.HasService() {
		return nil, domain.ErrConflict
	}
	return &domain.Order{ID: int64(len(f.requests)), BranchID: req.BranchID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newStore(t *testing.T) *cartStore.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cartStore.NewStore(client, time.Hour)
}

func TestExecute_PartialFailureClearsCart(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	start := time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)

	session := cart.NewSession(100)
	require.NoError(t, session.AddDraft(cart.Draft{
		BranchID: 1, StaffID: 7, ServiceID: 10, PriceMinor: 5000,
		Start: start, End: start.Add(30 * time.Minute),
	}))
	require.NoError(t, session.AddLooseProduct(1, cart.ProductLine{ProductID: 20, Quantity: 1}))
	require.NoError(t, store.Save(ctx, session))

	creator := &fakeCreator{}
	uc := NewUseCase(store, creator, nopLogger{})
	principal := domain.Principal{UserID: 100, Role: domain.RoleClient}

	resp, err := uc.Execute(ctx, &Request{Principal: principal})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	assert.ErrorIs(t, resp.Results[0].Err, domain.ErrConflict)
	assert.NotNil(t, resp.Results[1].Order)
	assert.Equal(t, []domain.Principal{principal, principal}, creator.principals)

	reloaded, err := store.Load(ctx, 100)
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
}

func TestExecute_ClientIDIsPropagated(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	session := cart.NewSession(7)
	require.NoError(t, session.AddLooseProduct(1, cart.ProductLine{ProductID: 20, Quantity: 2}))
	require.NoError(t, store.Save(ctx, session))

	creator := &fakeCreator{}
	uc := NewUseCase(store, creator, nopLogger{})
	clientID := int64(100)

	resp, err := uc.Execute(ctx, &Request{Principal: domain.Principal{UserID: 7, Role: domain.RoleStaff}, ClientID: &clientID})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Succeeded)
	require.Len(t, creator.requests, 1)
	require.NotNil(t, creator.requests[0].ClientID)
	assert.Equal(t, int64(100), *creator.requests[0].ClientID)
}

func TestExecute_EmptyCart(t *testing.T) {
	creator := &fakeCreator{}
	uc := NewUseCase(newStore(t), creator, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Principal: domain.Principal{UserID: 5, Role: domain.RoleClient}})
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
	assert.Empty(t, creator.requests)
}

func TestExecute_InvalidClientID(t *testing.T) {
	uc := NewUseCase(newStore(t), &fakeCreator{}, nopLogger{})
	bad := int64(-1)

	_, err := uc.Execute(context.Background(), &Request{Principal: domain.Principal{UserID: 5, Role: domain.RoleAdmin}, ClientID: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
