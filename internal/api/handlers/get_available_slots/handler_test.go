package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/availability"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/branches/{branchId}/available-slots", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &mockUseCase{}
	date := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	start := date.Add(9 * time.Hour)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.BranchID == 5 &&
			req.ServiceID == 3 &&
			req.Date.Equal(date) &&
			req.Policy == "hourly" &&
			req.StaffID != nil && *req.StaffID == 7 &&
			req.MarginMinutes != nil && *req.MarginMinutes == 10 &&
			req.OmitUnavailable
	})).Return(&getAvailableSlots.Response{
		Date:            date,
		BranchID:        5,
		ServiceID:       3,
		DurationMinutes: 45,
		Policy:          availability.PolicyHourly,
		Open:            "09:00",
		Close:           "18:00",
		Slots: []getAvailableSlots.Slot{
			{Start: start, End: start.Add(45 * time.Minute), FreeStaffIDs: []int64{7}, Available: true},
		},
	}, nil)

	rec := serve(NewHandler(uc, nopLogger{}),
		"/api/v1/branches/5/available-slots?serviceId=3&date=2030-03-04&staffId=7&policy=hourly&marginMinutes=10&omitUnavailable=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2030-03-04", resp.Date)
	assert.Equal(t, "hourly", resp.Policy)
	assert.Equal(t, "09:00", resp.OpenTime)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, []int64{7}, resp.Slots[0].FreeStaffIDs)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{name: "missing service", target: "/api/v1/branches/5/available-slots?date=2030-03-04", wantStatus: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/branches/5/available-slots?serviceId=3", wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/branches/5/available-slots?serviceId=3&date=04.03.2030", wantStatus: http.StatusBadRequest},
		{name: "bad margin", target: "/api/v1/branches/5/available-slots?serviceId=3&date=2030-03-04&marginMinutes=x", wantStatus: http.StatusBadRequest},
		{name: "branch not found", target: "/api/v1/branches/5/available-slots?serviceId=3&date=2030-03-04", ucErr: getAvailableSlots.ErrBranchNotFound, wantStatus: http.StatusNotFound},
		{name: "service not in branch", target: "/api/v1/branches/5/available-slots?serviceId=3&date=2030-03-04", ucErr: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "past date", target: "/api/v1/branches/5/available-slots?serviceId=3&date=2020-03-04", ucErr: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/branches/5/available-slots?serviceId=3&date=2030-03-04", ucErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(NewHandler(uc, nopLogger{}), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
