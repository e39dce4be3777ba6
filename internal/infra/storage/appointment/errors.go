package appointment

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrSlotTaken возвращается, когда у мастера уже есть пересекающийся визит
	// (сработало exclusion-ограничение или конфликт сериализации)
	ErrSlotTaken = errors.New("appointment.repository: staff already booked for this time")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

const (
	pqExclusionViolation   pq.ErrorCode = "23P01"
	pqSerializationFailure pq.ErrorCode = "40001"
)

// isConflict возвращает true для ошибок Postgres, означающих занятый слот
func isConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqExclusionViolation || pqErr.Code == pqSerializationFailure
}
