package complete_order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/orders/models"
	completeOrder "github.com/m04kA/SMC-BarberService/internal/usecase/complete_order"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *completeOrder.Request) (*completeOrder.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*completeOrder.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, orderID, userID, role string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/orders/{orderId}/complete", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/complete", nil)
	req.Header.Set(middleware.HeaderUserID, userID)
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReplayIsReported(t *testing.T) {
	uc := &mockUseCase{}
	order := &domain.Order{ID: 9, BranchID: 1, ClientID: 42, Status: domain.StatusCompleted}
	settlement := &domain.Settlement{OrderID: 9, EarningMinor: 3750, LoyaltyPointsAdded: 75, LoyaltyStampsAdded: 1, CommissionBasisPoints: 5000}

	uc.On("Execute", mock.Anything, &completeOrder.Request{
		Principal: domain.Principal{UserID: 7, Role: domain.RoleStaff},
		OrderID:   9,
	}).Return(&completeOrder.Response{Order: order, Settlement: settlement, Replayed: true}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), "9", "7", "staff")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SettlementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.AlreadyCompleted)
	assert.Equal(t, int64(3750), resp.EarningMinor)
	assert.Equal(t, int64(75), resp.LoyaltyPointsAdded)
	assert.Equal(t, "completed", resp.Order.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		orderID    string
		err        error
		wantStatus int
	}{
		{name: "bad id", orderID: "abc", wantStatus: http.StatusBadRequest},
		{name: "not found", orderID: "9", err: completeOrder.ErrOrderNotFound, wantStatus: http.StatusNotFound},
		{name: "client forbidden", orderID: "9", err: completeOrder.ErrUnauthorized, wantStatus: http.StatusForbidden},
		{name: "cancelled order", orderID: "9", err: completeOrder.ErrInvalidState, wantStatus: http.StatusConflict},
		{name: "internal", orderID: "9", err: completeOrder.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := serve(NewHandler(uc, nopLogger{}), tt.orderID, "7", "staff")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
