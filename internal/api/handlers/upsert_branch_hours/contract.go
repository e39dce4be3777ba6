package upsert_branch_hours

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/branches/models"
)

type BranchService interface {
	UpsertHours(ctx context.Context, principal domain.Principal, branchID int64, req *models.UpsertHoursRequest) (*models.HoursRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
