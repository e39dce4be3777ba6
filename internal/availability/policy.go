package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// ErrUnknownPolicy возвращается при неизвестной политике шага
var ErrUnknownPolicy = errors.New("availability: unknown step policy")

// StepPolicy определяет, как сдвигается начало следующего слота
type StepPolicy string

const (
	// PolicyMargin шаг = длительность услуги + буфер (self-serve / POS сценарий)
	PolicyMargin StepPolicy = "margin"
	// PolicyHourly фиксированный шаг 60 минут, буфер не используется (walk-in сценарий)
	PolicyHourly StepPolicy = "hourly"
)

// ParseStepPolicy парсит политику; пустая строка означает fallback
func ParseStepPolicy(s string, fallback StepPolicy) (StepPolicy, error) {
	switch p := StepPolicy(s); p {
	case "":
		return fallback, nil
	case PolicyMargin, PolicyHourly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Options параметры перебора слотов
type Options struct {
	Policy          StepPolicy
	MarginMinutes   int  // учитывается только для PolicyMargin
	OmitUnavailable bool // не возвращать слоты без свободных мастеров
}

// stepMinutes возвращает шаг перебора для длительности услуги
func (o Options) stepMinutes(durationMinutes int) int {
	if o.Policy == PolicyHourly {
		return domain.HourlyStepMinutes
	}
	margin := o.MarginMinutes
	if margin < 0 {
		margin = 0
	}
	return durationMinutes + margin
}
