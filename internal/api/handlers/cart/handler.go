package cart

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	cartpkg "github.com/m04kA/SMC-BarberService/internal/cart"
	cartService "github.com/m04kA/SMC-BarberService/internal/service/cart"
	"github.com/m04kA/SMC-BarberService/internal/service/cart/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена в филиале"
	msgProductNotFound    = "товар не найден в филиале"
	msgBranchMismatch     = "все позиции корзины должны относиться к одному филиалу"
	msgInvalidDraft       = "некорректная запись в корзине"
	msgInvalidProduct     = "некорректная товарная позиция"
	msgDraftNotFound      = "запись не найдена в корзине"
)

// Handler обслуживает корзину текущего пользователя
type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/cart
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	response, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /cart", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

// Clear DELETE /api/v1/cart
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		h.respondError(w, "DELETE /cart", userID, err)
		return
	}

	h.logger.Info("DELETE /cart - Cart cleared: user_id=%d", userID)
	w.WriteHeader(http.StatusNoContent)
}

// AddDraft POST /api/v1/cart/drafts
func (h *Handler) AddDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.AddDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.AddDraft(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "POST /cart/drafts", userID, err)
		return
	}

	h.logger.Info("POST /cart/drafts - Draft added: user_id=%d, service_id=%d, drafts=%d",
		userID, req.ServiceID, len(response.Drafts))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// RemoveDraft DELETE /api/v1/cart/drafts
func (h *Handler) RemoveDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.RemoveDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /cart/drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.RemoveDraft(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "DELETE /cart/drafts", userID, err)
		return
	}

	h.logger.Info("DELETE /cart/drafts - Draft removed: user_id=%d, service_id=%d", userID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// AddProduct POST /api/v1/cart/products
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.AddProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.AddProduct(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "POST /cart/products", userID, err)
		return
	}

	h.logger.Info("POST /cart/products - Product added: user_id=%d, product_id=%d", userID, req.ProductID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, cartService.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, cartService.ErrProductNotFound):
		h.logger.Warn("%s - Product not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgProductNotFound)

	case errors.Is(err, cartpkg.ErrBranchMismatch):
		h.logger.Warn("%s - Branch mismatch: user_id=%d", route, userID)
		handlers.RespondConflict(w, msgBranchMismatch)

	case errors.Is(err, cartpkg.ErrInvalidDraft):
		h.logger.Warn("%s - Invalid draft: user_id=%d, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, msgInvalidDraft)

	case errors.Is(err, cartpkg.ErrInvalidProduct):
		h.logger.Warn("%s - Invalid product line: user_id=%d, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, msgInvalidProduct)

	case errors.Is(err, cartpkg.ErrDraftNotFound):
		h.logger.Warn("%s - Draft not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgDraftNotFound)

	default:
		h.logger.Error("%s - Cart operation failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
