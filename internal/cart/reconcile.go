package cart

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Reconcile превращает содержимое корзины в запросы на создание заказов:
//   - каждый черновик дает ровно один запрос (услуга + приложенные к ней товары)
//   - все товары без услуги объединяются не более чем в один запрос без мастера и времени
//   - пустая корзина дает пустой список
func Reconcile(branchID int64, clientID *int64, drafts []Draft, loose []ProductLine) []domain.CreateOrderRequest {
	requests := make([]domain.CreateOrderRequest, 0, len(drafts)+1)

	for _, d := range drafts {
		staffID := d.StaffID
		start := d.Start
		end := d.End

		items := make([]domain.OrderItemRequest, 0, 1+len(d.Products))
		items = append(items, domain.OrderItemRequest{Kind: domain.ItemKindService, RefID: d.ServiceID, Quantity: 1})
		for _, p := range mergeLines(nil, d.Products) {
			items = append(items, domain.OrderItemRequest{Kind: domain.ItemKindProduct, RefID: p.ProductID, Quantity: p.Quantity})
		}

		requests = append(requests, domain.CreateOrderRequest{
			BranchID: d.BranchID,
			StaffID:  &staffID,
			StartAt:  &start,
			EndAt:    &end,
			ClientID: copyID(clientID),
			Items:    items,
		})
	}

	merged := mergeLines(nil, loose)
	if len(merged) > 0 {
		items := make([]domain.OrderItemRequest, 0, len(merged))
		for _, p := range merged {
			items = append(items, domain.OrderItemRequest{Kind: domain.ItemKindProduct, RefID: p.ProductID, Quantity: p.Quantity})
		}
		requests = append(requests, domain.CreateOrderRequest{
			BranchID: branchID,
			ClientID: copyID(clientID),
			Items:    items,
		})
	}

	return requests
}

// Reconcile строит запросы из корзины
func (s *Session) Reconcile() []domain.CreateOrderRequest {
	return Reconcile(s.BranchID, s.ClientID, s.Drafts, s.LooseProducts)
}

// Submitter граница создания заказов
type Submitter interface {
	Submit(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error)
}

// Result итог отправки одного запроса
type Result struct {
	Request domain.CreateOrderRequest
	Order   *domain.Order
	Err     error
}

// Checkout отправляет каждый запрос корзины независимо и очищает корзину
// независимо от результатов. Ошибка одного запроса не мешает остальным и не
// откатывает уже созданные заказы.
func Checkout(ctx context.Context, s *Session, submitter Submitter) []Result {
	requests := s.Reconcile()
	results := make([]Result, 0, len(requests))

	for i := range requests {
		req := requests[i]
		order, err := submitter.Submit(ctx, &req)
		results = append(results, Result{Request: req, Order: order, Err: err})
	}

	s.Clear()
	s.UpdatedAt = time.Now().UTC()
	return results
}

// Succeeded возвращает количество успешно созданных заказов
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
