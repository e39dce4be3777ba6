package create_order

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateRequest валидирует входные данные до любых обращений к хранилищу
func validateRequest(req *domain.CreateOrderRequest, now time.Time) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchId must be positive", ErrValidationFailed)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidationFailed)
	}

	if len(req.Items) > domain.MaxItemsPerOrder {
		return fmt.Errorf("%w: too many items (max %d)", ErrValidationFailed, domain.MaxItemsPerOrder)
	}

	for i, item := range req.Items {
		if _, err := domain.ParseItemKind(string(item.Kind)); err != nil {
			return fmt.Errorf("%w: items[%d]: %v", ErrValidationFailed, i, err)
		}
		if item.RefID <= 0 {
			return fmt.Errorf("%w: items[%d]: id must be positive", ErrValidationFailed, i)
		}
		if item.Quantity < 1 || item.Quantity > domain.MaxItemQuantity {
			return fmt.Errorf("%w: items[%d]: quantity must be in 1..%d", ErrValidationFailed, i, domain.MaxItemQuantity)
		}
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long (max %d characters)", ErrValidationFailed, domain.MaxNotesLength)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrValidationFailed)
	}

	if req.HasService() {
		return validateWindow(req, now)
	}

	// Товарный заказ не занимает время мастера
	if req.StaffID != nil || req.StartAt != nil || req.EndAt != nil {
		return fmt.Errorf("%w: staffId, startAt and endAt are only allowed for service orders", ErrValidationFailed)
	}

	return nil
}

func validateWindow(req *domain.CreateOrderRequest, now time.Time) error {
	if req.StaffID == nil || req.StartAt == nil || req.EndAt == nil {
		return fmt.Errorf("%w: staffId, startAt and endAt are required for service orders", ErrValidationFailed)
	}

	if *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrValidationFailed)
	}

	if !req.StartAt.Before(*req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrValidationFailed)
	}

	if req.StartAt.Before(now) {
		return fmt.Errorf("%w: startAt is in the past", ErrValidationFailed)
	}

	return nil
}

// validateAuthorization определяет клиента заказа.
// Клиент оформляет заказ только на себя, мастер и администратор - на явно указанного клиента.
func validateAuthorization(principal domain.Principal, clientID *int64) (int64, error) {
	switch {
	case principal.IsClient():
		if clientID != nil && *clientID != principal.UserID {
			return 0, fmt.Errorf("%w: client %d cannot order for client %d", ErrUnauthorized, principal.UserID, *clientID)
		}
		return principal.UserID, nil

	case principal.IsStaffOrAdmin():
		if clientID == nil {
			return 0, fmt.Errorf("%w: clientId is required for %s", ErrValidationFailed, principal.Role)
		}
		return *clientID, nil

	default:
		return 0, fmt.Errorf("%w: unknown role %q", ErrUnauthorized, principal.Role)
	}
}

// uniqueRefs собирает ID услуг и товаров без повторов
func uniqueRefs(items []domain.OrderItemRequest) (services, products []int64) {
	seen := make(map[domain.ItemKind]map[int64]bool, 2)
	for _, item := range items {
		if seen[item.Kind] == nil {
			seen[item.Kind] = make(map[int64]bool)
		}
		if seen[item.Kind][item.RefID] {
			continue
		}
		seen[item.Kind][item.RefID] = true

		if item.Kind == domain.ItemKindService {
			services = append(services, item.RefID)
		} else {
			products = append(products, item.RefID)
		}
	}
	return services, products
}
