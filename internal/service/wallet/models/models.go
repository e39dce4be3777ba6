package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// GetWalletRequest запрос кошелька мастера за период
type GetWalletRequest struct {
	StaffID int64
	From    *time.Time // Начало периода (опционально)
	To      *time.Time // Конец периода, не включительно (опционально)
}

// WalletEntryResponse запись журнала кошелька
type WalletEntryResponse struct {
	ID          int64     `json:"id"`
	OrderID     *int64    `json:"orderId,omitempty"`
	AmountMinor int64     `json:"amountMinor"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WalletResponse баланс и записи кошелька
type WalletResponse struct {
	StaffID      int64                 `json:"staffId"`
	StaffName    string                `json:"staffName"`
	BalanceMinor int64                 `json:"balanceMinor"`
	Entries      []WalletEntryResponse `json:"entries"`
}

// FromDomainEntries конвертирует записи журнала в DTO
func FromDomainEntries(entries []domain.WalletEntry) []WalletEntryResponse {
	result := make([]WalletEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, WalletEntryResponse{
			ID:          e.ID,
			OrderID:     e.OrderID,
			AmountMinor: e.AmountMinor,
			Kind:        string(e.Kind),
			CreatedAt:   e.CreatedAt,
		})
	}
	return result
}
