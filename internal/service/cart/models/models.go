package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/cart"
)

// AddDraftRequest тело запроса на добавление черновика записи
type AddDraftRequest struct {
	BranchID  int64              `json:"branchId"`
	StaffID   int64              `json:"staffId"`
	ServiceID int64              `json:"serviceId"`
	Start     time.Time          `json:"start"`
	Products  []cart.ProductLine `json:"products,omitempty"`
}

// RemoveDraftRequest тело запроса на удаление черновика
type RemoveDraftRequest struct {
	ServiceID int64     `json:"serviceId"`
	StaffID   int64     `json:"staffId"`
	Start     time.Time `json:"start"`
}

// AddProductRequest тело запроса на добавление товара без услуги
type AddProductRequest struct {
	BranchID  int64 `json:"branchId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CartResponse содержимое корзины
type CartResponse struct {
	ID            string             `json:"id"`
	BranchID      int64              `json:"branchId,omitempty"`
	Drafts        []cart.Draft       `json:"drafts"`
	LooseProducts []cart.ProductLine `json:"looseProducts"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// FromSession конвертирует корзину в DTO
func FromSession(s *cart.Session) *CartResponse {
	return &CartResponse{
		ID:            s.ID.String(),
		BranchID:      s.BranchID,
		Drafts:        s.Drafts,
		LooseProducts: s.LooseProducts,
		UpdatedAt:     s.UpdatedAt,
	}
}
