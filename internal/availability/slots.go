package availability

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Input данные для вычисления слотов на один день
type Input struct {
	Hours             domain.OperatingHoursRule   // Правило часов работы, уже разрешенное для дня недели
	Date              time.Time                   // Целевой день в часовом поясе филиала
	DurationMinutes   int                         // Длительность услуги
	CandidateStaffIDs []int64                     // Мастера, среди которых ищем свободных
	Busy              map[int64][]domain.Interval // Занятые интервалы по мастерам
}

// ComputeSlots перебирает слоты от открытия до закрытия и для каждого вычисляет
// множество свободных мастеров.
//
// Слот [t, t+duration) выдается, пока t+duration <= закрытия. Мастер свободен,
// если ни один его занятый интервал не пересекается со слотом (граничные
// интервалы не считаются пересечением). Слоты без свободных мастеров выдаются,
// если не включен OmitUnavailable.
//
// Функция чистая: одинаковый вход дает одинаковый результат, текущее время не читается.
func ComputeSlots(in Input, opts Options) []domain.Slot {
	slots := make([]domain.Slot, 0)

	if in.DurationMinutes <= 0 {
		return slots
	}

	window, err := in.Hours.Window(in.Date)
	if err != nil || !window.Start.Before(window.End) {
		return slots
	}

	step := opts.stepMinutes(in.DurationMinutes)
	candidates := uniqueStaff(in.CandidateStaffIDs)

	for t := window.Start; ; t = domain.AddMinutes(t, step) {
		end := domain.AddMinutes(t, in.DurationMinutes)
		if end.After(window.End) {
			break
		}

		candidate := domain.Interval{Start: t, End: end}
		free := freeStaff(candidate, candidates, in.Busy)

		if opts.OmitUnavailable && len(free) == 0 {
			continue
		}

		slots = append(slots, domain.Slot{
			Start:        t,
			End:          end,
			FreeStaffIDs: free,
		})
	}

	return slots
}

// freeStaff возвращает мастеров, у которых нет пересечений со слотом,
// в порядке списка кандидатов
func freeStaff(slot domain.Interval, candidates []int64, busy map[int64][]domain.Interval) []int64 {
	free := make([]int64, 0, len(candidates))
	for _, staffID := range candidates {
		if !overlapsAny(slot, busy[staffID]) {
			free = append(free, staffID)
		}
	}
	return free
}

func overlapsAny(slot domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

func uniqueStaff(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
