package create_order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/orders/models"
	createOrder "github.com/m04kA/SMC-BarberService/internal/usecase/create_order"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createOrder.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{
	"branchId": 1,
	"staffId": 7,
	"startAt": "2030-03-04T10:00:00Z",
	"endAt": "2030-03-04T11:00:00Z",
	"items": [{"type": "service", "id": 3, "quantity": 1}]
}`

func serve(h *Handler, payload string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(payload))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, nopLogger{})

	start := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	staffID := int64(7)
	item, err := domain.NewLineItem(domain.ItemKindService, 3, 1, 7500)
	require.NoError(t, err)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createOrder.Request) bool {
		return req.Principal.UserID == 42 &&
			req.Order.BranchID == 1 &&
			*req.Order.StaffID == 7 &&
			len(req.Order.Items) == 1 &&
			req.Order.Items[0].Kind == domain.ItemKindService
	})).Return(&createOrder.Response{Order: &domain.Order{
		ID:       100,
		BranchID: 1,
		ClientID: 42,
		StaffID:  &staffID,
		StartAt:  &start,
		EndAt:    &end,
		Status:   domain.StatusPending,
		Items:    []domain.OrderLineItem{item},
	}}, nil)

	rec := serve(h, body, "42")

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, int64(7500), resp.TotalMinor)
	assert.Equal(t, "pending", resp.Status)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot taken", err: fmt.Errorf("%w: staff=7", createOrder.ErrSlotUnavailable), wantStatus: http.StatusConflict},
		{name: "foreign client", err: createOrder.ErrUnauthorized, wantStatus: http.StatusForbidden},
		{name: "item from another branch", err: createOrder.ErrInvalidItem, wantStatus: http.StatusNotFound},
		{name: "outside hours", err: createOrder.ErrOutsideHours, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid window", err: createOrder.ErrValidationFailed, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createOrder.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, nopLogger{}), body, "42")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed json", payload: `{"branchId":`},
		{name: "unknown field", payload: `{"branchId": 1, "coupon": "x", "items": []}`},
		{name: "unknown item type", payload: `{"branchId": 1, "items": [{"type": "gift", "id": 1, "quantity": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}

			rec := serve(NewHandler(uc, nopLogger{}), tt.payload, "42")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_RequiresIdentity(t *testing.T) {
	uc := &mockUseCase{}

	rec := serve(NewHandler(uc, nopLogger{}), body, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
