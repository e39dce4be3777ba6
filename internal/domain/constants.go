package domain

import "github.com/m04kA/SMC-BarberService/pkg/types"

// Fallback operating hours used when a branch has neither a weekday nor a default rule.
// Callers rely on never receiving an empty schedule.
var (
	FallbackOpenTime  = types.TimeString("09:00")
	FallbackCloseTime = types.TimeString("18:00")
)

// Settlement constants
const (
	DefaultCommissionBasisPoints = 5000 // 50%
	BasisPointsDenominator       = 10000
	MinorUnitsPerLoyaltyPoint    = 100
)

// Availability constants
const (
	HourlyStepMinutes = 60
	MaxMarginMinutes  = 240
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
	MaxItemQuantity           = 1000
	MaxItemsPerOrder          = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов заказов, которые занимают время мастера
var ActiveStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// TerminalStatuses список конечных статусов заказа
var TerminalStatuses = []OrderStatus{
	StatusCompleted,
	StatusCancelled,
}
