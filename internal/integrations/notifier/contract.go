package notifier

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier отправка уведомлений, реализуется всеми драйверами пакета
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
	Close() error
}

// Driver имя драйвера уведомлений из конфигурации
const (
	DriverKafka = "kafka"
	DriverAsynq = "asynq"
	DriverLog   = "log"
)

// DefaultPublishTimeout ограничение на одну публикацию, если в конфигурации не задано иное
const DefaultPublishTimeout = 500 * time.Millisecond
