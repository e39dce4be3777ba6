package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/orders/models"
	createOrder "github.com/m04kA/SMC-BarberService/internal/usecase/create_order"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidItems       = "некорректные позиции заказа"
	msgForbidden          = "нельзя оформить заказ на этого клиента"
	msgSlotUnavailable    = "мастер уже занят в выбранное время"
	msgInvalidItem        = "услуга или товар не найдены в филиале"
	msgBranchNotFound     = "филиал не найден"
	msgStaffNotFound      = "мастер не найден в филиале"
	msgClientNotFound     = "клиент не найден"
	msgOutsideHours       = "время визита вне часов работы филиала"
	msgValidationFailed   = "некорректные данные заказа"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	order, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /orders - Invalid items: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItems)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createOrder.Request{
		Principal: principal,
		Order:     order,
	})
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrUnauthorized):
			h.logger.Warn("POST /orders - Access denied: user_id=%d, role=%s", principal.UserID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createOrder.ErrSlotUnavailable):
			h.logger.Warn("POST /orders - Slot unavailable: branch_id=%d, user_id=%d", req.BranchID, principal.UserID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createOrder.ErrInvalidItem):
			h.logger.Warn("POST /orders - Invalid item: %v", err)
			handlers.RespondNotFound(w, msgInvalidItem)

		case errors.Is(err, createOrder.ErrBranchNotFound):
			h.logger.Warn("POST /orders - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createOrder.ErrStaffNotFound):
			h.logger.Warn("POST /orders - Staff not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createOrder.ErrClientNotFound):
			h.logger.Warn("POST /orders - Client not found: %v", err)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createOrder.ErrOutsideHours):
			h.logger.Warn("POST /orders - Outside branch hours: branch_id=%d", req.BranchID)
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, createOrder.ErrValidationFailed):
			h.logger.Warn("POST /orders - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created successfully: order_id=%d, user_id=%d",
		result.Order.ID, principal.UserID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainOrder(result.Order))
}
