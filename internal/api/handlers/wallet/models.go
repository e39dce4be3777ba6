package wallet

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/wallet/models"
)

// ToServiceRequest формирует запрос к сервису; from и to - даты YYYY-MM-DD, to включительно
func ToServiceRequest(staffID int64, query url.Values, loc *time.Location) (*models.GetWalletRequest, error) {
	req := &models.GetWalletRequest{StaffID: staffID}

	if raw := query.Get("from"); raw != "" {
		from, err := time.ParseInLocation(domain.DateFormat, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.ParseInLocation(domain.DateFormat, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		end := to.AddDate(0, 0, 1)
		req.To = &end
	}

	return req, nil
}
