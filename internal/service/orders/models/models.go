package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модели

// ListClientOrdersRequest запрос на получение истории заказов клиента
type ListClientOrdersRequest struct {
	ClientID int64
	Status   *string
}

// ListBranchOrdersRequest запрос на получение заказов филиала
type ListBranchOrdersRequest struct {
	BranchID  int64
	StaffID   *int64     // Фильтр по мастеру (опционально)
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода, не включительно (опционально)
	Status    *string    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBranchOrdersRequest) ToDomainFilter() (domain.OrderFilter, error) {
	filter := domain.OrderFilter{
		BranchID:  &r.BranchID,
		StaffID:   r.StaffID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.StartDate != nil && r.EndDate != nil && !r.StartDate.Before(*r.EndDate) {
		return filter, fmt.Errorf("%w: startDate must be before endDate", domain.ErrValidation)
	}

	if r.Status != nil {
		status, err := domain.ParseOrderStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CreateOrderRequest тело запроса на создание заказа
type CreateOrderRequest struct {
	BranchID int64              `json:"branchId"`
	StaffID  *int64             `json:"staffId,omitempty"`
	StartAt  *time.Time         `json:"startAt,omitempty"`
	EndAt    *time.Time         `json:"endAt,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
	ClientID *int64             `json:"clientId,omitempty"`
	Items    []OrderItemRequest `json:"items"`
}

// OrderItemRequest позиция запроса на создание заказа
type OrderItemRequest struct {
	Type     string `json:"type"` // service | product
	ID       int64  `json:"id"`
	Quantity int    `json:"quantity"`
}

// ToDomain конвертирует тело запроса в domain модель
func (r *CreateOrderRequest) ToDomain() (domain.CreateOrderRequest, error) {
	items := make([]domain.OrderItemRequest, 0, len(r.Items))
	for i, item := range r.Items {
		kind, err := domain.ParseItemKind(item.Type)
		if err != nil {
			return domain.CreateOrderRequest{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, domain.OrderItemRequest{Kind: kind, RefID: item.ID, Quantity: item.Quantity})
	}

	return domain.CreateOrderRequest{
		BranchID: r.BranchID,
		StaffID:  r.StaffID,
		StartAt:  r.StartAt,
		EndAt:    r.EndAt,
		Notes:    r.Notes,
		ClientID: r.ClientID,
		Items:    items,
	}, nil
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID         int64               `json:"id"`
	BranchID   int64               `json:"branchId"`
	ClientID   int64               `json:"clientId"`
	StaffID    *int64              `json:"staffId,omitempty"`
	StartAt    *time.Time          `json:"startAt,omitempty"`
	EndAt      *time.Time          `json:"endAt,omitempty"`
	Notes      *string             `json:"notes,omitempty"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	TotalMinor int64               `json:"totalMinor"`

	CompletedAt *string `json:"completedAt,omitempty"` // ISO 8601 format
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItemResponse позиция заказа
type OrderItemResponse struct {
	ID             int64  `json:"id"`
	Type           string `json:"type"`
	RefID          int64  `json:"refId"`
	Quantity       int    `json:"quantity"`
	UnitPriceMinor int64  `json:"unitPriceMinor"`
	SubtotalMinor  int64  `json:"subtotalMinor"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// Методы конвертации

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:         o.ID,
		BranchID:   o.BranchID,
		ClientID:   o.ClientID,
		StaffID:    o.StaffID,
		StartAt:    o.StartAt,
		EndAt:      o.EndAt,
		Notes:      o.Notes,
		Status:     string(o.Status),
		Items:      make([]OrderItemResponse, 0, len(o.Items)),
		TotalMinor: o.TotalMinor(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}

	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:             item.ID,
			Type:           string(item.Kind),
			RefID:          item.RefID,
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPriceMinor,
			SubtotalMinor:  item.SubtotalMinor,
		})
	}

	if o.CompletedAt != nil {
		s := o.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	if o.CancelledAt != nil {
		s := o.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o))
	}
	return resp
}

// SettlementResponse ответ с результатом завершения заказа
type SettlementResponse struct {
	Order                 *OrderResponse `json:"order"`
	EarningMinor          int64          `json:"earningMinor"`
	LoyaltyPointsAdded    int64          `json:"loyaltyPointsAdded"`
	LoyaltyStampsAdded    int64          `json:"loyaltyStampsAdded"`
	CommissionBasisPoints int            `json:"commissionBasisPoints"`
	AlreadyCompleted      bool           `json:"alreadyCompleted"`
}

// FromDomainSettlement собирает ответ завершения заказа
func FromDomainSettlement(o *domain.Order, s *domain.Settlement, replayed bool) *SettlementResponse {
	return &SettlementResponse{
		Order:                 FromDomainOrder(o),
		EarningMinor:          s.EarningMinor,
		LoyaltyPointsAdded:    s.LoyaltyPointsAdded,
		LoyaltyStampsAdded:    s.LoyaltyStampsAdded,
		CommissionBasisPoints: s.CommissionBasisPoints,
		AlreadyCompleted:      replayed,
	}
}
