package wallet

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	walletService "github.com/m04kA/SMC-BarberService/internal/service/wallet"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "доступ к кошельку запрещен"
	msgStaffNotFound  = "мастер не найден"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler кошелек мастера: баланс и выписка
type Handler struct {
	service  WalletService
	location *time.Location
	logger   Logger
}

func NewHandler(service WalletService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Get GET /api/v1/staff/{staffId}/wallet
// Query params: from, to (YYYY-MM-DD, опционально)
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /staff/{id}/wallet - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	serviceReq, err := ToServiceRequest(staffID, r.URL.Query(), h.location)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/wallet - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Get(r.Context(), principal, serviceReq)
	if err != nil {
		h.respondError(w, "GET /staff/{id}/wallet", staffID, principal, err)
		return
	}

	h.logger.Info("GET /staff/{id}/wallet - Wallet retrieved: staff_id=%d, entries=%d", staffID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Export GET /api/v1/staff/{staffId}/wallet/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /staff/{id}/wallet/export - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	serviceReq, err := ToServiceRequest(staffID, r.URL.Query(), h.location)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/wallet/export - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	buf, err := h.service.ExportStatement(r.Context(), principal, serviceReq)
	if err != nil {
		h.respondError(w, "GET /staff/{id}/wallet/export", staffID, principal, err)
		return
	}

	filename := fmt.Sprintf("wallet-%d-%s.xlsx", staffID, time.Now().In(h.location).Format(domain.DateFormat))
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("GET /staff/{id}/wallet/export - Failed to write statement: staff_id=%d, error=%v", staffID, err)
		return
	}

	h.logger.Info("GET /staff/{id}/wallet/export - Statement exported: staff_id=%d", staffID)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, staffID int64, principal domain.Principal, err error) {
	switch {
	case errors.Is(err, walletService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: staff_id=%d, user_id=%d", route, staffID, principal.UserID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, walletService.ErrStaffNotFound):
		h.logger.Warn("%s - Staff not found: staff_id=%d", route, staffID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, walletService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	default:
		h.logger.Error("%s - Wallet operation failed: staff_id=%d, error=%v", route, staffID, err)
		handlers.RespondInternalError(w)
	}
}
