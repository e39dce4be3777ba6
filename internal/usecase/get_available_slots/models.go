package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Settings настройки вычисления слотов из конфигурации
type Settings struct {
	Location      *time.Location          // Часовой пояс филиалов
	DefaultPolicy availability.StepPolicy // Политика шага, если в запросе не указана
	MarginMinutes int                     // Буфер по умолчанию для политики margin
}

// Request модель запроса на получение слотов
type Request struct {
	BranchID        int64     // ID филиала
	ServiceID       int64     // ID услуги
	Date            time.Time // Дата (учитываются только год, месяц, день)
	StaffID         *int64    // Мастер выбран заранее (сначала мастер, потом время)
	Policy          string    // margin | hourly, пусто = по умолчанию
	MarginMinutes   *int      // Переопределение буфера
	OmitUnavailable bool      // Не возвращать слоты без свободных мастеров
}

// Response модель ответа со слотами
type Response struct {
	Date            time.Time
	BranchID        int64
	ServiceID       int64
	DurationMinutes int
	Policy          availability.StepPolicy
	MarginMinutes   int
	Open            types.TimeString
	Close           types.TimeString
	Slots           []Slot
}

// Slot модель слота в ответе
type Slot struct {
	Start        time.Time
	End          time.Time
	FreeStaffIDs []int64
	Available    bool
}
