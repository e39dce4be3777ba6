package get_branch_orders

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/orders/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from и to задаются датами YYYY-MM-DD в часовом поясе филиалов, to включительно.
func ToServiceRequest(branchID int64, query url.Values, loc *time.Location) (*models.ListBranchOrdersRequest, error) {
	req := &models.ListBranchOrdersRequest{BranchID: branchID}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("staffId: %w", err)
		}
		req.StaffID = &staffID
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.ParseInLocation(domain.DateFormat, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.StartDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.ParseInLocation(domain.DateFormat, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		end := to.AddDate(0, 0, 1)
		req.EndDate = &end
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	return req, nil
}
