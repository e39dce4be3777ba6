package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	BranchID        int64           `json:"branchId"`
	ServiceID       int64           `json:"serviceId"`
	DurationMinutes int             `json:"durationMinutes"`
	Policy          string          `json:"policy"`
	MarginMinutes   int             `json:"marginMinutes"`
	OpenTime        string          `json:"openTime"`
	CloseTime       string          `json:"closeTime"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	StartTime    string    `json:"startTime"` // "HH:MM" в часовом поясе филиала
	FreeStaffIDs []int64   `json:"freeStaffIds"`
	Available    bool      `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start:        slot.Start,
			End:          slot.End,
			StartTime:    slot.Start.Format(domain.TimeFormat),
			FreeStaffIDs: slot.FreeStaffIDs,
			Available:    slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BranchID:        resp.BranchID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Policy:          string(resp.Policy),
		MarginMinutes:   resp.MarginMinutes,
		OpenTime:        resp.Open.String(),
		CloseTime:       resp.Close.String(),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(branchID, serviceID int64, dateStr string, query url.Values) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BranchID:  branchID,
		ServiceID: serviceID,
		Date:      date,
		Policy:    query.Get("policy"),
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("staffId: %w", err)
		}
		req.StaffID = &staffID
	}

	if raw := query.Get("marginMinutes"); raw != "" {
		margin, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("marginMinutes: %w", err)
		}
		req.MarginMinutes = &margin
	}

	if raw := query.Get("omitUnavailable"); raw != "" {
		omit, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("omitUnavailable: %w", err)
		}
		req.OmitUnavailable = omit
	}

	return req, nil
}
