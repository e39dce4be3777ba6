package delete_branch_hours

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

type BranchService interface {
	DeleteHours(ctx context.Context, principal domain.Principal, branchID int64, weekday string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
