package wallet

import (
	"bytes"
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/wallet/models"
)

type WalletService interface {
	Get(ctx context.Context, principal domain.Principal, req *models.GetWalletRequest) (*models.WalletResponse, error)
	ExportStatement(ctx context.Context, principal domain.Principal, req *models.GetWalletRequest) (*bytes.Buffer, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
