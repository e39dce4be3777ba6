package delete_branch_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/branches"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidWeekday  = "день недели должен быть 0..6 или default"
	msgForbidden       = "изменять часы работы может только администратор"
	msgBranchNotFound  = "филиал не найден"
	msgHoursNotFound   = "правило часов работы не найдено"
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

// Handle DELETE /api/v1/branches/{branchId}/hours/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	branchID, err := handlers.PathInt64(r, "branchId")
	if err != nil {
		h.logger.Warn("DELETE /branches/{id}/hours/{weekday} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	weekday := mux.Vars(r)["weekday"]

	err = h.service.DeleteHours(r.Context(), principal, branchID, weekday)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrAccessDenied):
			h.logger.Warn("DELETE /branches/{id}/hours/{weekday} - Access denied: branch_id=%d, user_id=%d", branchID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("DELETE /branches/{id}/hours/{weekday} - Invalid weekday: %q", weekday)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, branches.ErrBranchNotFound):
			h.logger.Warn("DELETE /branches/{id}/hours/{weekday} - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, branches.ErrHoursNotFound):
			h.logger.Warn("DELETE /branches/{id}/hours/{weekday} - Rule not found: branch_id=%d, weekday=%s", branchID, weekday)
			handlers.RespondNotFound(w, msgHoursNotFound)

		default:
			h.logger.Error("DELETE /branches/{id}/hours/{weekday} - Failed to delete hours: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /branches/{id}/hours/{weekday} - Hours deleted: branch_id=%d, weekday=%s", branchID, weekday)
	w.WriteHeader(http.StatusNoContent)
}
