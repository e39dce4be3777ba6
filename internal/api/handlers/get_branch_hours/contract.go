package get_branch_hours

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/branches/models"
)

type BranchService interface {
	ListHours(ctx context.Context, branchID int64) (*models.HoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
