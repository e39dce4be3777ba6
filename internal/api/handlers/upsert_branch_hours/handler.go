package upsert_branch_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/branches"
	"github.com/m04kA/SMC-BarberService/internal/service/branches/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректные часы работы: ожидается HH:MM и открытие раньше закрытия"
	msgForbidden          = "изменять часы работы может только администратор"
	msgBranchNotFound     = "филиал не найден"
)

type Handler struct {
	service BranchService
	logger  Logger
}

func NewHandler(service BranchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/branches/{branchId}/hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	branchID, err := handlers.PathInt64(r, "branchId")
	if err != nil {
		h.logger.Warn("PUT /branches/{id}/hours - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req models.UpsertHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.UpsertHours(r.Context(), principal, branchID, &req)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrAccessDenied):
			h.logger.Warn("PUT /branches/{id}/hours - Access denied: branch_id=%d, user_id=%d", branchID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, branches.ErrBranchNotFound):
			h.logger.Warn("PUT /branches/{id}/hours - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("PUT /branches/{id}/hours - Invalid hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		default:
			h.logger.Error("PUT /branches/{id}/hours - Failed to upsert hours: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /branches/{id}/hours - Hours saved: branch_id=%d, rule_id=%d", branchID, response.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
