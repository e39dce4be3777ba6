package checkout_cart

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	checkoutCart "github.com/m04kA/SMC-BarberService/internal/usecase/checkout_cart"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClientID    = "некорректный ID клиента"
)

type Handler struct {
	useCase CheckoutCartUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutCartUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/cart/checkout
// Каждый запрос корзины оформляется независимо, корзина очищается при любом исходе.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CheckoutRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /cart/checkout - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &checkoutCart.Request{
		Principal: principal,
		ClientID:  req.ClientID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkoutCart.ErrInvalidInput):
			h.logger.Warn("POST /cart/checkout - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClientID)

		default:
			h.logger.Error("POST /cart/checkout - Failed to checkout cart: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cart/checkout - Cart checked out: user_id=%d, succeeded=%d, failed=%d",
		principal.UserID, result.Succeeded, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
