package complete_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/orders/models"
	completeOrder "github.com/m04kA/SMC-BarberService/internal/usecase/complete_order"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgInvalidOrderID = "некорректный ID заказа"
	msgNotFound       = "заказ не найден"
	msgForbidden      = "завершать заказы могут только мастера филиала и администраторы"
	msgInvalidState   = "завершить можно только подтвержденный заказ"
)

type Handler struct {
	useCase CompleteOrderUseCase
	logger  Logger
}

func NewHandler(useCase CompleteOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/{orderId}/complete
// Повторный вызов для завершенного заказа возвращает сохраненный расчет с alreadyCompleted=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("POST /orders/{id}/complete - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completeOrder.Request{
		Principal: principal,
		OrderID:   orderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeOrder.ErrOrderNotFound):
			h.logger.Warn("POST /orders/{id}/complete - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeOrder.ErrUnauthorized):
			h.logger.Warn("POST /orders/{id}/complete - Access denied: order_id=%d, user_id=%d", orderID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completeOrder.ErrInvalidState):
			h.logger.Warn("POST /orders/{id}/complete - Invalid state: order_id=%d", orderID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, completeOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders/{id}/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOrderID)

		default:
			h.logger.Error("POST /orders/{id}/complete - Failed to complete order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/{id}/complete - Order settled: order_id=%d, earning=%d, replayed=%t",
		orderID, result.Settlement.EarningMinor, result.Replayed)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettlement(result.Order, result.Settlement, result.Replayed))
}
