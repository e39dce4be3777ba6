package domain

import (
	"fmt"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus converts a raw string to OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
	}
}

// ItemKind is the type of an order line item
type ItemKind string

const (
	ItemKindService ItemKind = "service"
	ItemKindProduct ItemKind = "product"
)

// ParseItemKind converts a raw string to ItemKind
func ParseItemKind(s string) (ItemKind, error) {
	switch kind := ItemKind(s); kind {
	case ItemKindService, ItemKindProduct:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: unknown item type %q", ErrValidation, s)
	}
}

// Order represents a client order. Service-bearing orders carry staff and time window,
// product-only orders leave them nil.
type Order struct {
	ID       int64
	BranchID int64
	StaffID  *int64
	ClientID int64
	StartAt  *time.Time
	EndAt    *time.Time
	Notes    *string
	Status   OrderStatus
	Items    []OrderLineItem

	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsServiceBearing returns true if the order occupies a staff member's time
func (o *Order) IsServiceBearing() bool {
	return o.StaffID != nil && o.StartAt != nil && o.EndAt != nil
}

// Window returns the appointment interval for service-bearing orders
func (o *Order) Window() (Interval, bool) {
	if !o.IsServiceBearing() {
		return Interval{}, false
	}
	return Interval{Start: *o.StartAt, End: *o.EndAt}, true
}

// IsTerminal returns true if no further transitions are allowed
func (o *Order) IsTerminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// IsSettled returns true if the order was completed and its settlement recorded
func (o *Order) IsSettled() bool {
	return o.Status == StatusCompleted && o.CompletedAt != nil
}

// CanBeConfirmed returns true if the order can move to confirmed
func (o *Order) CanBeConfirmed() bool {
	return o.Status == StatusPending
}

// CanBeCancelled returns true if the order can be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// CanBeCompleted returns true if the order can move to completed.
// A pending order has to be confirmed first.
func (o *Order) CanBeCompleted() bool {
	return o.Status == StatusConfirmed
}

// TotalMinor returns the sum of all line-item subtotals
func (o *Order) TotalMinor() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.SubtotalMinor
	}
	return total
}

// OrderLineItem is a priced line of an order. SubtotalMinor == Quantity * UnitPriceMinor.
type OrderLineItem struct {
	ID             int64
	OrderID        int64
	Kind           ItemKind
	RefID          int64
	Quantity       int
	UnitPriceMinor int64
	SubtotalMinor  int64
}

// NewLineItem builds a line item and computes its subtotal
func NewLineItem(kind ItemKind, refID int64, quantity int, unitPriceMinor int64) (OrderLineItem, error) {
	if quantity < 1 {
		return OrderLineItem{}, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	if unitPriceMinor < 0 {
		return OrderLineItem{}, fmt.Errorf("%w: unit price must be non-negative", ErrValidation)
	}
	return OrderLineItem{
		Kind:           kind,
		RefID:          refID,
		Quantity:       quantity,
		UnitPriceMinor: unitPriceMinor,
		SubtotalMinor:  int64(quantity) * unitPriceMinor,
	}, nil
}

// Appointment is the staff-time twin of a service-bearing order.
// The storage layer forbids two active appointments of one staff member from overlapping.
type Appointment struct {
	ID          int64
	OrderID     int64
	BranchID    int64
	StaffID     int64
	StartAt     time.Time
	EndAt       time.Time
	CancelledAt *time.Time
}

// OrderItemRequest a requested line of a CreateOrderRequest, priced by the boundary
type OrderItemRequest struct {
	Kind     ItemKind
	RefID    int64
	Quantity int
}

// CreateOrderRequest is the input of the order-creation boundary
type CreateOrderRequest struct {
	BranchID int64
	StaffID  *int64
	StartAt  *time.Time
	EndAt    *time.Time
	Notes    *string
	ClientID *int64
	Items    []OrderItemRequest
}

// HasService returns true if any requested item is a service
func (r *CreateOrderRequest) HasService() bool {
	for _, item := range r.Items {
		if item.Kind == ItemKindService {
			return true
		}
	}
	return false
}

// OrderFilter фильтр для получения списка заказов
type OrderFilter struct {
	BranchID  *int64       // Фильтр по филиалу
	ClientID  *int64       // Фильтр по клиенту
	StaffID   *int64       // Фильтр по мастеру
	StartDate *time.Time   // Начало периода (по start_at либо created_at для товарных заказов)
	EndDate   *time.Time   // Конец периода, не включительно
	Status    *OrderStatus // Фильтр по статусу
}
