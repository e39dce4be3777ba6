package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/cart"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	cartStore "github.com/m04kA/SMC-BarberService/internal/infra/cache/cart"
	"github.com/m04kA/SMC-BarberService/internal/service/cart/models"
)

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]*domain.Service), args.Error(1)
}

func (m *mockCatalogRepo) GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]*domain.Product), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var start = time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *mockCatalogRepo) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	catalog := &mockCatalogRepo{}
	catalog.On("GetServicesByIDs", mock.Anything, []int64{10}).Return(map[int64]*domain.Service{
		10: {ID: 10, BranchID: 1, DurationMinutes: 45, PriceMinor: 5000, Active: true},
	}, nil)
	catalog.On("GetProductsByIDs", mock.Anything, []int64{20}).Return(map[int64]*domain.Product{
		20: {ID: 20, BranchID: 1, PriceMinor: 700, Active: true},
	}, nil)

	return NewService(cartStore.NewStore(client, time.Hour), catalog, nopLogger{}), catalog
}

func TestAddDraft_PricesFromCatalogAndMerges(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	req := &models.AddDraftRequest{BranchID: 1, StaffID: 7, ServiceID: 10, Start: start,
		Products: []cart.ProductLine{{ProductID: 20, Quantity: 1}}}

	_, err := s.AddDraft(ctx, 100, req)
	require.NoError(t, err)
	resp, err := s.AddDraft(ctx, 100, req)
	require.NoError(t, err)

	require.Len(t, resp.Drafts, 1)
	d := resp.Drafts[0]
	assert.Equal(t, int64(5000), d.PriceMinor)
	assert.True(t, d.End.Equal(start.Add(45*time.Minute)))
	assert.Equal(t, []cart.ProductLine{{ProductID: 20, Quantity: 2}}, d.Products)

	stored, err := s.Get(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, stored.Drafts, 1)
}

func TestAddDraft_ServiceFromAnotherBranch(t *testing.T) {
	s, _ := newService(t)

	_, err := s.AddDraft(context.Background(), 100, &models.AddDraftRequest{BranchID: 2, StaffID: 7, ServiceID: 10, Start: start})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestAddProduct_BranchMismatch(t *testing.T) {
	s, catalog := newService(t)
	ctx := context.Background()
	catalog.On("GetProductsByIDs", mock.Anything, []int64{30}).Return(map[int64]*domain.Product{
		30: {ID: 30, BranchID: 2, PriceMinor: 100, Active: true},
	}, nil)

	_, err := s.AddProduct(ctx, 100, &models.AddProductRequest{BranchID: 1, ProductID: 20, Quantity: 1})
	require.NoError(t, err)

	_, err = s.AddProduct(ctx, 100, &models.AddProductRequest{BranchID: 2, ProductID: 30, Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrBranchMismatch)
}

func TestRemoveDraftAndClear(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.AddDraft(ctx, 100, &models.AddDraftRequest{BranchID: 1, StaffID: 7, ServiceID: 10, Start: start})
	require.NoError(t, err)

	_, err = s.RemoveDraft(ctx, 100, &models.RemoveDraftRequest{ServiceID: 10, StaffID: 7, Start: start.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := s.RemoveDraft(ctx, 100, &models.RemoveDraftRequest{ServiceID: 10, StaffID: 7, Start: start})
	require.NoError(t, err)
	assert.Empty(t, resp.Drafts)
	assert.Zero(t, resp.BranchID)

	_, err = s.AddProduct(ctx, 100, &models.AddProductRequest{BranchID: 1, ProductID: 20, Quantity: 3})
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx, 100))

	empty, err := s.Get(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, empty.LooseProducts)
}
