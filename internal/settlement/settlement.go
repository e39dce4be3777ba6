package settlement

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Result начисления по завершенному заказу
type Result struct {
	ServiceSubtotalMinor int64
	EarningMinor         int64
	LoyaltyPointsAdded   int64
	LoyaltyStampsAdded   int64
}

// Settle рассчитывает комиссию мастера и начисления по карте лояльности.
//
// Учитываются только позиции-услуги:
//   - комиссия = floor(сумма услуг * bp / 10000), округление всегда вниз
//   - баллы = floor(сумма услуг / 100)
//   - штампы = количество единиц услуг
//
// Ставка commissionBP передается вызывающей стороной, см. ResolveRate.
func Settle(items []domain.OrderLineItem, commissionBP int) Result {
	var subtotal, count int64
	for _, item := range items {
		if item.Kind != domain.ItemKindService {
			continue
		}
		subtotal += item.SubtotalMinor
		count += int64(item.Quantity)
	}

	bp := clampRate(commissionBP)

	return Result{
		ServiceSubtotalMinor: subtotal,
		EarningMinor:         floorDiv(subtotal*int64(bp), domain.BasisPointsDenominator),
		LoyaltyPointsAdded:   floorDiv(subtotal, domain.MinorUnitsPerLoyaltyPoint),
		LoyaltyStampsAdded:   count,
	}
}

// ResolveRate возвращает ставку мастера, иначе ставку из конфигурации,
// иначе DefaultCommissionBasisPoints. Явный 0 - допустимая ставка.
func ResolveRate(staffBP, configuredBP *int) int {
	if staffBP != nil {
		return clampRate(*staffBP)
	}
	if configuredBP != nil {
		return clampRate(*configuredBP)
	}
	return domain.DefaultCommissionBasisPoints
}

func clampRate(bp int) int {
	if bp < 0 {
		return 0
	}
	if bp > domain.BasisPointsDenominator {
		return domain.BasisPointsDenominator
	}
	return bp
}

// floorDiv деление с округлением к минус бесконечности
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
