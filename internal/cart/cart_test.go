package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

var start = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

func draft(products ...ProductLine) Draft {
	return Draft{
		BranchID:   1,
		StaffID:    5,
		ServiceID:  9,
		PriceMinor: 2500,
		Start:      start,
		End:        start.Add(45 * time.Minute),
		Products:   products,
	}
}

func TestSession_AddDraftMergesSameKey(t *testing.T) {
	s := NewSession(100)

	require.NoError(t, s.AddDraft(draft(ProductLine{ProductID: 1, Quantity: 1})))
	require.NoError(t, s.AddDraft(draft(ProductLine{ProductID: 1, Quantity: 2}, ProductLine{ProductID: 2, Quantity: 1})))

	require.Len(t, s.Drafts, 1)
	assert.Equal(t, []ProductLine{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 1}}, s.Drafts[0].Products)
}

func TestSession_AddDraftSameInstantDifferentZone(t *testing.T) {
	s := NewSession(100)
	require.NoError(t, s.AddDraft(draft()))

	other := draft(ProductLine{ProductID: 3, Quantity: 1})
	loc := time.FixedZone("MSK", 3*60*60)
	other.Start = other.Start.In(loc)
	other.End = other.End.In(loc)
	require.NoError(t, s.AddDraft(other))

	assert.Len(t, s.Drafts, 1)
}

func TestSession_DifferentStaffIsNewDraft(t *testing.T) {
	s := NewSession(100)
	require.NoError(t, s.AddDraft(draft()))

	d := draft()
	d.StaffID = 6
	require.NoError(t, s.AddDraft(d))

	assert.Len(t, s.Drafts, 2)
}

func TestSession_Validation(t *testing.T) {
	s := NewSession(100)

	bad := draft()
	bad.End = bad.Start
	assert.ErrorIs(t, s.AddDraft(bad), domain.ErrValidation)

	assert.ErrorIs(t, s.AddLooseProduct(1, ProductLine{ProductID: 1, Quantity: 0}), ErrInvalidProduct)

	require.NoError(t, s.AddDraft(draft()))
	other := draft()
	other.BranchID = 2
	assert.ErrorIs(t, s.AddDraft(other), ErrBranchMismatch)
}

func TestSession_RemoveDraft(t *testing.T) {
	s := NewSession(100)
	require.NoError(t, s.AddDraft(draft()))

	require.NoError(t, s.RemoveDraft(draft().Key()))
	assert.True(t, s.IsEmpty())
	assert.Zero(t, s.BranchID)

	assert.ErrorIs(t, s.RemoveDraft(draft().Key()), ErrDraftNotFound)
}

func TestReconcile_Empty(t *testing.T) {
	assert.Empty(t, NewSession(1).Reconcile())
}

func TestReconcile_OneRequestPerDraftPlusLooseProducts(t *testing.T) {
	s := NewSession(100)
	s.ClientID = ptr.Ptr(int64(42))

	require.NoError(t, s.AddDraft(draft(ProductLine{ProductID: 1, Quantity: 2})))
	second := draft()
	second.Start = start.Add(2 * time.Hour)
	second.End = second.Start.Add(30 * time.Minute)
	require.NoError(t, s.AddDraft(second))
	require.NoError(t, s.AddLooseProduct(1, ProductLine{ProductID: 7, Quantity: 1}))
	require.NoError(t, s.AddLooseProduct(1, ProductLine{ProductID: 7, Quantity: 4}))
	require.NoError(t, s.AddLooseProduct(1, ProductLine{ProductID: 8, Quantity: 1}))

	reqs := s.Reconcile()
	require.Len(t, reqs, 3)

	first := reqs[0]
	require.NotNil(t, first.StaffID)
	assert.Equal(t, int64(5), *first.StaffID)
	assert.Equal(t, start, *first.StartAt)
	assert.Equal(t, []domain.OrderItemRequest{
		{Kind: domain.ItemKindService, RefID: 9, Quantity: 1},
		{Kind: domain.ItemKindProduct, RefID: 1, Quantity: 2},
	}, first.Items)
	assert.Equal(t, int64(42), *first.ClientID)

	assert.Len(t, reqs[1].Items, 1)

	loose := reqs[2]
	assert.Nil(t, loose.StaffID)
	assert.Nil(t, loose.StartAt)
	assert.Nil(t, loose.EndAt)
	assert.Equal(t, int64(1), loose.BranchID)
	assert.Equal(t, []domain.OrderItemRequest{
		{Kind: domain.ItemKindProduct, RefID: 7, Quantity: 5},
		{Kind: domain.ItemKindProduct, RefID: 8, Quantity: 1},
	}, loose.Items)
}

type fakeSubmitter struct {
	calls int
	fail  map[int]error
}

func (f *fakeSubmitter) Submit(_ context.Context, req *domain.CreateOrderRequest) (*domain.Order, error) {
	f.calls++
	if err, ok := f.fail[f.calls]; ok {
		return nil, err
	}
	return &domain.Order{ID: int64(f.calls), BranchID: req.BranchID}, nil
}

func TestCheckout_PartialFailureStillClears(t *testing.T) {
	s := NewSession(100)
	require.NoError(t, s.AddDraft(draft()))
	require.NoError(t, s.AddLooseProduct(1, ProductLine{ProductID: 7, Quantity: 1}))

	conflict := errors.New("slot taken")
	sub := &fakeSubmitter{fail: map[int]error{1: conflict}}

	results := Checkout(context.Background(), s, sub)

	require.Len(t, results, 2)
	assert.Equal(t, 2, sub.calls)
	assert.ErrorIs(t, results[0].Err, conflict)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, Succeeded(results))
	assert.True(t, s.IsEmpty())
}
