package checkout_cart

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/orders/models"
	checkoutCart "github.com/m04kA/SMC-BarberService/internal/usecase/checkout_cart"
)

// CheckoutRequest тело запроса; clientId нужен только мастеру и администратору
type CheckoutRequest struct {
	ClientID *int64 `json:"clientId,omitempty"`
}

// CheckoutResponse итог оформления корзины
type CheckoutResponse struct {
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []CheckoutResult `json:"results"`
}

// CheckoutResult результат одного запроса корзины
type CheckoutResult struct {
	BranchID int64                 `json:"branchId"`
	StaffID  *int64                `json:"staffId,omitempty"`
	StartAt  *time.Time            `json:"startAt,omitempty"`
	Order    *models.OrderResponse `json:"order,omitempty"`
	Status   int                   `json:"status"`
	Error    string                `json:"error,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkoutCart.Response) *CheckoutResponse {
	results := make([]CheckoutResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		item := CheckoutResult{
			BranchID: r.Request.BranchID,
			StaffID:  r.Request.StaffID,
			StartAt:  r.Request.StartAt,
			Status:   http.StatusCreated,
		}
		if r.Err != nil {
			item.Status = statusFor(r.Err)
			item.Error = r.Err.Error()
		} else {
			item.Order = models.FromDomainOrder(r.Order)
		}
		results = append(results, item)
	}

	return &CheckoutResponse{
		Succeeded: resp.Succeeded,
		Failed:    resp.Failed,
		Results:   results,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
